// Package cli implements the html2vega command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roboco-io/html2vega/internal/config"
)

var version = "dev"

var (
	cfgFile      string
	registryName string
	logLevel     string
	noColor      bool

	appConfig = config.DefaultConfig()
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "html2vega [file]",
	Short: "HTML 마크업을 Vega-Lite 텍스트 레이어로 변환",
	Long: `html2vega는 제한된 HTML 마크업을 스타일이 적용된 텍스트 조각으로 파싱하고,
줄바꿈과 워드랩을 적용해 배치한 뒤, 같은 스타일끼리 묶은 Vega-Lite 레이어로 출력합니다.

파일 인자를 주면 convert 명령과 같이 동작합니다. "-"는 표준 입력을 뜻합니다.

예시:
  html2vega page.html
  echo '<b>Bold</b> and <i>italic</i>' | html2vega convert -
  html2vega parse page.html --format text --layout
  html2vega tags`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConvert(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "html2vega version %s\n", version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "설정 파일 경로 (기본: ~/.html2vega/config.yaml)")
	pf.StringVar(&registryName, "registry", "", "태그 핸들러 세트 (default, minimal)")
	pf.StringVar(&logLevel, "log-level", "", "로그 레벨 (debug, info, warn, error)")
	pf.BoolVar(&noColor, "no-color", false, "색상 출력 끄기")

	addConvertFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads .env and the configuration file, applies global flags and
// builds the logger. Config subcommands skip loading so a broken file can
// still be inspected and fixed.
func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	if cmd.HasParent() && cmd.Parent() == configCmd {
		return nil
	}

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if registryName != "" {
		cfg.Parser.Registry = registryName
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("잘못된 설정: %w", err)
	}

	l, err := cfg.Logging.Prepare(cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("로거 초기화 실패: %w", err)
	}

	appConfig = cfg
	logger = l
	logger.Debug("Configuration loaded",
		zap.String("config", loader.ConfigPath()),
		zap.String("registry", cfg.Parser.Registry),
		zap.String("measurer", cfg.Render.Measurer))
	return nil
}

func newLoader() (*config.Loader, error) {
	if cfgFile != "" {
		return config.NewLoaderWithPath(cfgFile), nil
	}
	return config.NewLoader()
}

// readInput reads the named file, or standard input for "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("표준 입력 읽기 실패: %w", err)
		}
		return string(data), nil
	}

	if _, err := os.Stat(name); os.IsNotExist(err) {
		return "", fmt.Errorf("파일을 찾을 수 없습니다: %s", name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("파일 읽기 실패: %w", err)
	}
	return string(data), nil
}

// writeOutput writes to the named file, or to stdout when name is empty.
func writeOutput(cmd *cobra.Command, name string, data []byte) error {
	if name == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	return nil
}

// printDiagnostics lists parse diagnostics on stderr.
func printDiagnostics(w io.Writer, errs []string) {
	if len(errs) == 0 {
		return
	}
	warn := color.New(color.FgYellow, color.Bold)
	warn.Fprintf(w, "경고 %d건:\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}
