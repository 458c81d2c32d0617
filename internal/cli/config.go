package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roboco-io/html2vega/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `html2vega 설정을 관리합니다.

설정 파일 위치: ~/.html2vega/config.yaml

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 적용된 설정을 표시합니다.

환경 변수가 설정되어 있으면 해당 값이 적용됩니다.
설정 파일이 없으면 기본값이 표시됩니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 ~/.html2vega/config.yaml에 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  render.font_size     기본 글자 크기 (px)
  render.font_family   글꼴
  render.line_height   줄 높이 (0 = 글자 크기 x 1.4)
  render.max_width     줄바꿈 너비 (px)
  render.background    배경색
  render.measurer      글자 폭 측정 방식 (approx, font)
  render.pretty        JSON 들여쓰기 (true, false)
  parser.registry      태그 핸들러 세트 (default, minimal)
  parser.strict        경고를 오류로 처리 (true, false)
  logging.level        로그 레벨 (debug, info, warn, error)
  logging.file         로그 파일 경로 (빈 값 = 파일 로그 끄기)

예시:
  html2vega config set render.max_width 300
  html2vega config set parser.registry minimal`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := newLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "오류: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	out := cmd.OutOrStdout()

	// Show config file status
	if loader.Exists() {
		fmt.Fprintf(out, "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "설정 파일: (기본값 사용)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}
	fmt.Fprintln(out, string(data))

	if err := cfg.Validate(); err != nil {
		printDiagnostics(cmd.ErrOrStderr(), strings.Split(err.Error(), "; "))
	}

	fmt.Fprintln(out, "환경 변수:")
	writeEnvTable(out)
	return nil
}

func writeEnvTable(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	envVars := []struct {
		key  string
		desc string
	}{
		{config.EnvFontSize, "기본 글자 크기"},
		{config.EnvMaxWidth, "줄바꿈 너비"},
		{config.EnvBackground, "배경색"},
		{config.EnvMeasurer, "글자 폭 측정 방식"},
		{config.EnvRegistry, "태그 핸들러 세트"},
		{config.EnvStrict, "경고를 오류로 처리"},
		{config.EnvLogLevel, "로그 레벨"},
		{config.EnvLogFile, "로그 파일"},
	}

	for _, ev := range envVars {
		status := "(미설정)"
		if v := os.Getenv(ev.key); v != "" {
			status = v
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	if configForce {
		err = loader.Save(config.DefaultConfig())
	} else {
		err = loader.Init()
	}
	if errors.Is(err, os.ErrExist) {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}
	if err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("잘못된 설정 값: %w", err)
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}

var configKeys = []string{
	"render.font_size", "render.font_family", "render.line_height", "render.max_width",
	"render.background", "render.measurer", "render.pretty",
	"parser.registry", "parser.strict",
	"logging.level", "logging.file",
}

func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "render.font_size", "render.line_height", "render.max_width":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("유효하지 않은 숫자: %s", value)
		}
		switch key {
		case "render.font_size":
			cfg.Render.FontSize = f
		case "render.line_height":
			cfg.Render.LineHeight = f
		default:
			cfg.Render.MaxWidth = f
		}

	case "render.pretty", "parser.strict":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("유효하지 않은 값: %s (true 또는 false)", value)
		}
		if key == "render.pretty" {
			cfg.Render.Pretty = b
		} else {
			cfg.Parser.Strict = b
		}

	case "render.font_family":
		cfg.Render.FontFamily = value

	case "render.background":
		cfg.Render.Background = value

	case "render.measurer":
		valid := []string{config.MeasurerApprox, config.MeasurerFont}
		if !slices.Contains(valid, value) {
			return fmt.Errorf("유효하지 않은 측정 방식: %s (지원: %s)", value, strings.Join(valid, ", "))
		}
		cfg.Render.Measurer = value

	case "parser.registry":
		valid := []string{config.RegistryDefault, config.RegistryMinimal}
		if !slices.Contains(valid, value) {
			return fmt.Errorf("유효하지 않은 핸들러 세트: %s (지원: %s)", value, strings.Join(valid, ", "))
		}
		cfg.Parser.Registry = value

	case "logging.level":
		cfg.Logging.Level = value

	case "logging.file":
		cfg.Logging.File = value

	default:
		return fmt.Errorf("알 수 없는 설정 키: %s\n지원하는 키: %s", key, strings.Join(configKeys, ", "))
	}
	return nil
}
