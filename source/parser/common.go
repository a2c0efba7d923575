package parser

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cleanText нормализует текст ячейки: NFKC (превращает &nbsp; и прочие "особые" пробелы в обычные),
// затем убирает пробелы по краям и схлопывает повторяющиеся.
func cleanText(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// isHeader определяет строку-заголовок, которую иногда верстают через <td>, а не <th>.
func isHeader(cells []string) bool {
	return len(cells) > 0 && strings.EqualFold(cells[0], "name")
}
