package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// scale steps of the Indian numbering system, largest first
var indianScales = []struct {
	size int64
	name string
}{
	{10000000, "Crore"},
	{100000, "Lakh"},
	{1000, "Thousand"},
	{100, "Hundred"},
}

// NumberToWords spells n using lakh and crore grouping. Zero gives "".
func NumberToWords(n int64) string {
	if n <= 0 {
		return ""
	}
	if n < 20 {
		return ones[n]
	}
	if n < 100 {
		return strings.TrimSpace(tens[n/10] + " " + ones[n%10])
	}
	for _, s := range indianScales {
		if n >= s.size {
			head := NumberToWords(n/s.size) + " " + s.name
			if rest := n % s.size; rest > 0 {
				return head + " " + NumberToWords(rest)
			}
			return head
		}
	}
	return ""
}

// AmountInWords spells a rupee amount the way it is printed on a ledger,
// e.g. "One Thousand Two Hundred Rupees and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	prefix := ""
	if amount.IsNegative() {
		prefix = "Minus "
		amount = amount.Neg()
	}
	amount = amount.Round(2)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	var parts []string
	if rupees > 0 {
		parts = append(parts, NumberToWords(rupees)+" Rupees")
	}
	if paise > 0 {
		parts = append(parts, NumberToWords(paise)+" Paise")
	}
	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return prefix + strings.Join(parts, " and ") + " Only"
}
