package report

import (
	"fmt"
	"strings"
)

// CSV renders the report in the export format: name and room always quoted,
// item count as a bare integer, values with two decimals and '.' as the
// separator regardless of display locale. Rows are joined with '\n' and the
// document has no trailing newline.
func CSV(report MonthlyReport) []byte {
	var b strings.Builder
	b.WriteString("Nome Completo,Sala,Total de Itens,Valor Total")

	for _, s := range report.Students {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s,%s,%d,%.2f", quote(s.FullName), quote(s.Room), s.TotalItems, s.TotalValue)
	}

	return []byte(b.String())
}

// Filename is the conventional download name for a monthly export.
func Filename(year, month int) string {
	return fmt.Sprintf("relatorio_%d_%02d.csv", year, month)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
