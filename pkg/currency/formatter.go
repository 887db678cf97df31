package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// precision per ISO code; unknown codes use two decimals
var precision = map[string]int32{
	"DZD": 0,
	"JPY": 0,
	"EUR": 2,
	"USD": 2,
	"GBP": 2,
	"AED": 2,
}

// thousands separator per ISO code
var separators = map[string]string{
	"DZD": " ",
	"EUR": " ",
}

// Format renders an amount with its currency code, e.g. "EUR 65.38" or
// "DZD 17 000".
func Format(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	places, ok := precision[code]
	if !ok {
		places = 2
	}
	sep, ok := separators[code]
	if !ok {
		sep = ","
	}

	rounded := amount.Round(places)
	negative := rounded.IsNegative()
	if negative {
		rounded = rounded.Neg()
	}

	str := rounded.StringFixed(places)
	intPart, fracPart, hasFrac := strings.Cut(str, ".")

	result := code + " " + addThousandsSeparator(intPart, sep)
	if hasFrac {
		result += "." + fracPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(n + (n-1)/3*len(sep))
	for i, r := range s {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return b.String()
}
