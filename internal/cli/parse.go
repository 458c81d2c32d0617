package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roboco-io/html2vega/internal/convert"
	"github.com/roboco-io/html2vega/internal/ir"
)

var (
	parseOutputPath string
	parseFormat     string
	parseLayout     bool
	parsePretty     bool
	parseMaxWidth   float64
	parseFontSize   float64
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "마크업에서 스타일 조각(세그먼트) 추출",
	Long: `HTML 마크업을 파싱하여 스타일이 적용된 텍스트 세그먼트를 출력합니다.

--layout 플래그를 사용하면 배치 단계까지 실행하여 각 조각의 위치와 크기,
전체 영역 크기도 함께 출력합니다. 출력 형식은 JSON 또는 텍스트를 지원합니다.

예시:
  html2vega parse page.html
  html2vega parse page.html --format text
  html2vega parse page.html --layout --max-width 200
  html2vega parse - -o segments.json < page.html`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVarP(&parseOutputPath, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "출력 형식 (json, text)")
	parseCmd.Flags().BoolVar(&parseLayout, "layout", false, "배치 결과 포함")
	parseCmd.Flags().BoolVar(&parsePretty, "pretty", true, "JSON 들여쓰기 적용")
	parseCmd.Flags().Float64Var(&parseMaxWidth, "max-width", 0, "줄바꿈 너비 (--layout과 함께 사용)")
	parseCmd.Flags().Float64Var(&parseFontSize, "font-size", 0, "기본 글자 크기 (--layout과 함께 사용)")

	rootCmd.AddCommand(parseCmd)
}

// parseResult is the output document of the parse command.
type parseResult struct {
	Segments  []ir.Segment  `json:"segments"`
	Fragments []ir.Fragment `json:"fragments,omitempty"`
	Bounds    *ir.Bounds    `json:"bounds,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	conv, closeFn, err := newConverter(appConfig, "")
	if err != nil {
		return err
	}
	defer closeFn()

	var out parseResult
	if parseLayout {
		var ov convert.Overrides
		if cmd.Flags().Changed("max-width") {
			ov.MaxWidth = convert.Float(parseMaxWidth)
		}
		if cmd.Flags().Changed("font-size") {
			ov.FontSize = convert.Float(parseFontSize)
		}
		res, err := conv.Convert(input, ov)
		if err != nil {
			return fmt.Errorf("파싱 실패: %w", err)
		}
		out = parseResult{
			Segments:  res.Segments,
			Fragments: res.Fragments,
			Bounds:    &res.Bounds,
			Errors:    res.Errors,
		}
	} else {
		res, err := conv.Parse(input)
		if err != nil {
			return fmt.Errorf("파싱 실패: %w", err)
		}
		out = parseResult{Segments: res.Segments, Errors: res.Errors}
	}

	output, err := formatParseResult(&out, parseFormat, parsePretty)
	if err != nil {
		return fmt.Errorf("출력 포맷팅 실패: %w", err)
	}

	if err := writeOutput(cmd, parseOutputPath, []byte(output)); err != nil {
		return err
	}
	if parseOutputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "세그먼트 추출 완료: %s\n", parseOutputPath)
	}
	return nil
}

func formatParseResult(out *parseResult, format string, pretty bool) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if pretty {
			data, err = json.MarshalIndent(out, "", "  ")
		} else {
			data, err = json.Marshal(out)
		}
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "text":
		return formatAsText(out), nil

	default:
		return "", fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

func formatAsText(out *parseResult) string {
	var sb strings.Builder

	if len(out.Fragments) > 0 {
		for _, f := range out.Fragments {
			sb.WriteString(fmt.Sprintf("(%7.2f, %7.2f) %6.2fx%-6.2f %-28s %q\n",
				f.X, f.Y, f.Width, f.Height, describeStyle(f.Style), f.Text))
		}
		if out.Bounds != nil {
			sb.WriteString(fmt.Sprintf("\n영역: %.2f x %.2f\n", out.Bounds.Width, out.Bounds.Height))
		}
	} else {
		for _, s := range out.Segments {
			if s.IsLineBreak() {
				sb.WriteString("↵\n")
				continue
			}
			sb.WriteString(fmt.Sprintf("%-28s %q\n", describeStyle(s.Style), s.Text))
		}
	}

	if len(out.Errors) > 0 {
		sb.WriteString("\n경고:\n")
		for _, e := range out.Errors {
			sb.WriteString("  - " + e + "\n")
		}
	}

	return sb.String()
}

// describeStyle renders the non-default parts of a style, "plain" when
// there are none.
func describeStyle(s ir.Style) string {
	var parts []string
	if s.FontWeight != ir.WeightNormal {
		parts = append(parts, string(s.FontWeight))
	}
	if s.FontStyle != ir.StyleNormal {
		parts = append(parts, string(s.FontStyle))
	}
	if s.TextDecoration != ir.DecorationNone {
		parts = append(parts, string(s.TextDecoration))
	}
	if s.Color != ir.DefaultColor {
		parts = append(parts, s.Color)
	}
	if s.FontSize != nil {
		parts = append(parts, fmt.Sprintf("%gpx", *s.FontSize))
	}
	if s.List != nil {
		parts = append(parts, fmt.Sprintf("%s:%d", s.List.ListType, s.List.NestingLevel))
	}
	if len(parts) == 0 {
		return "plain"
	}
	return "[" + strings.Join(parts, " ") + "]"
}
