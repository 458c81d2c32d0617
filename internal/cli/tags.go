package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roboco-io/html2vega/internal/handler"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "지원하는 태그 목록",
	Long: `현재 태그 핸들러 세트가 지원하는 태그를 등록 순서대로 표시합니다.

--registry 플래그 또는 설정 파일의 parser.registry 값으로 세트를 고를 수 있습니다.
(default: 전체 태그, minimal: b, strong, i, em, u, ins, span)

사용 예시:
  html2vega tags
  html2vega tags --registry minimal`,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	reg, err := appConfig.Parser.NewRegistry()
	if err != nil {
		return fmt.Errorf("태그 핸들러 초기화 실패: %w", err)
	}
	writeTagTable(cmd.OutOrStdout(), reg)
	return nil
}

func writeTagTable(out io.Writer, reg *handler.Registry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "태그\t핸들러\t줄바꿈\t속성 검증")
	fmt.Fprintln(w, "----\t------\t------\t---------")

	for _, tag := range reg.SupportedTags() {
		h, ok := reg.Lookup(tag)
		if !ok {
			continue
		}
		_, validates := h.(handler.AttributeValidator)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			tag, handlerName(h), mark(handler.IsLineBreak(h)), mark(validates))
	}
}

func handlerName(h handler.Handler) string {
	name := fmt.Sprintf("%T", h)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func mark(b bool) string {
	if b {
		return "✓"
	}
	return "-"
}
