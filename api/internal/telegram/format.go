package telegram

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cash-reader/api/internal/ocr/types"
)

var jp = message.NewPrinter(language.Japanese)

// FormatCounts renders counts notes-first with the yen total on the last line.
func FormatCounts(c types.DenominationCount) string {
	var b strings.Builder
	b.WriteString("📊 読み取り結果\n")
	for _, d := range types.Denominations {
		fmt.Fprintf(&b, "%s円: %v枚\n", d, c[d])
	}
	b.WriteString(jp.Sprintf("合計: %d円", c.Total()))
	return b.String()
}
