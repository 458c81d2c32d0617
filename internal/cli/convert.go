package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roboco-io/html2vega/internal/config"
	"github.com/roboco-io/html2vega/internal/convert"
)

// renderFlags holds the layout and document flags shared by convert and
// parse. Only flags set on the command line override the configuration.
type renderFlags struct {
	output     string
	fontSize   float64
	fontFamily string
	lineHeight float64
	maxWidth   float64
	background string
	width      float64
	height     float64
	measurer   string
	pretty     bool
	strict     bool
	quiet      bool
}

var convertFlags renderFlags

var convertCmd = &cobra.Command{
	Use:   "convert <file|->",
	Short: "HTML 마크업을 Vega-Lite 스펙(JSON)으로 변환",
	Long: `HTML 마크업을 파싱하고 배치한 뒤 Vega-Lite 스펙을 JSON으로 출력합니다.

지원하지 않는 태그나 잘못된 속성은 변환을 멈추지 않고 경고로 표시됩니다.
--strict 플래그를 사용하면 경고가 하나라도 있을 때 실패로 처리합니다.

환경 변수:
  HTML2VEGA_FONT_SIZE=14    기본 글자 크기
  HTML2VEGA_MAX_WIDTH=400   줄바꿈 너비
  HTML2VEGA_MEASURER=font   글자 폭 측정 방식 (approx, font)
  HTML2VEGA_STRICT=true     경고를 오류로 처리

예시:
  html2vega convert page.html
  html2vega convert page.html -o spec.json
  html2vega convert page.html --font-size 18 --max-width 300
  cat page.html | html2vega convert - --background black`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&convertFlags.output, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	f.Float64Var(&convertFlags.fontSize, "font-size", 0, "기본 글자 크기 (태그가 지정한 크기도 덮어씀)")
	f.StringVar(&convertFlags.fontFamily, "font-family", "", "글꼴")
	f.Float64Var(&convertFlags.lineHeight, "line-height", 0, "줄 높이 (기본: 글자 크기 x 1.4)")
	f.Float64Var(&convertFlags.maxWidth, "max-width", 0, "줄바꿈 너비")
	f.StringVar(&convertFlags.background, "background", "", "배경색")
	f.Float64Var(&convertFlags.width, "width", 0, "스펙 너비 (기본: 내용에 맞춤)")
	f.Float64Var(&convertFlags.height, "height", 0, "스펙 높이 (기본: 내용에 맞춤)")
	f.StringVar(&convertFlags.measurer, "measurer", "", "글자 폭 측정 방식 (approx, font)")
	f.BoolVar(&convertFlags.pretty, "pretty", true, "JSON 들여쓰기 적용")
	f.BoolVar(&convertFlags.strict, "strict", false, "경고가 있으면 실패로 처리")
	f.BoolVarP(&convertFlags.quiet, "quiet", "q", false, "경고 출력 안 함")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	conv, closeFn, err := newConverter(appConfig, convertFlags.measurer)
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := conv.Convert(input, overridesFromFlags(cmd, &convertFlags))
	if err != nil {
		return fmt.Errorf("변환 실패: %w", err)
	}

	if !convertFlags.quiet {
		printDiagnostics(cmd.ErrOrStderr(), res.Errors)
	}
	if (convertFlags.strict || appConfig.Parser.Strict) && res.HasErrors() {
		return fmt.Errorf("경고 %d건으로 변환 실패: %w", len(res.Errors), res.Err())
	}

	pretty := appConfig.Render.Pretty
	if cmd.Flags().Changed("pretty") {
		pretty = convertFlags.pretty
	}
	data, err := res.Spec.JSON(pretty)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	if err := writeOutput(cmd, convertFlags.output, data); err != nil {
		return err
	}
	if convertFlags.output != "" && !convertFlags.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "변환 완료: %s (레이어 %d개)\n", convertFlags.output, len(res.Spec.Layer))
	}
	return nil
}

// newConverter builds a converter from the configuration. The returned
// function releases the measurer.
func newConverter(cfg *config.Config, measurer string) (*convert.Converter, func(), error) {
	render := cfg.Render
	if measurer != "" {
		render.Measurer = measurer
	}

	m, err := render.NewMeasurer()
	if err != nil {
		return nil, nil, fmt.Errorf("측정기 초기화 실패: %w", err)
	}
	reg, err := cfg.Parser.NewRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("태그 핸들러 초기화 실패: %w", err)
	}

	closeFn := func() {
		if c, ok := m.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Warn("Failed to release measurer", zap.Error(err))
			}
		}
	}

	conv := convert.New(
		convert.WithRegistry(reg),
		convert.WithLogger(logger),
		convert.WithLayout(render.Options),
		convert.WithMeasurer(m),
		convert.WithFormat(render.Format()),
	)
	return conv, closeFn, nil
}

func overridesFromFlags(cmd *cobra.Command, f *renderFlags) convert.Overrides {
	var ov convert.Overrides
	flags := cmd.Flags()

	if flags.Changed("font-size") {
		ov.FontSize = convert.Float(f.fontSize)
	}
	if flags.Changed("font-family") {
		ov.FontFamily = convert.String(f.fontFamily)
	}
	if flags.Changed("line-height") {
		ov.LineHeight = convert.Float(f.lineHeight)
	}
	if flags.Changed("max-width") {
		ov.MaxWidth = convert.Float(f.maxWidth)
	}
	if flags.Changed("background") {
		ov.Background = convert.String(f.background)
	}
	if flags.Changed("width") {
		ov.Width = convert.Float(f.width)
	}
	if flags.Changed("height") {
		ov.Height = convert.Float(f.height)
	}
	return ov
}
