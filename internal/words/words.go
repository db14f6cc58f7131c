// Package words renders monetary amounts as English phrases using the
// Indian numbering system (crore/lakh/thousand).
package words

import (
	"math"
	"strings"
)

var units = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
	"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
	"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty",
	"Seventy", "Eighty", "Ninety"}

func twoDigit(n int) string {
	if n < 20 {
		return units[n]
	}
	s := tens[n/10]
	if n%10 != 0 {
		s += " " + units[n%10]
	}
	return s
}

func threeDigit(n int) string {
	var s string
	if n >= 100 {
		s = units[n/100] + " Hundred"
		if n%100 != 0 {
			s += " "
		}
	}
	if n%100 != 0 {
		s += twoDigit(n % 100)
	}
	return s
}

// Words converts amount to its worded rupee representation with a paise
// remainder, always ending in " Only". The sign is ignored; callers convey
// negativity separately (credit notes do it through the banner).
func Words(amount float64) string {
	abs := math.Abs(amount)
	n := int(abs)
	paise := int(math.Round((abs - float64(n)) * 100))
	if paise >= 100 {
		n++
		paise -= 100
	}

	crore := n / 10000000
	n %= 10000000
	lakh := n / 100000
	n %= 100000
	thousand := n / 1000
	hundred := n % 1000

	var parts []string
	if crore > 0 {
		parts = append(parts, threeDigit(crore)+" Crore")
	}
	if lakh > 0 {
		parts = append(parts, threeDigit(lakh)+" Lakh")
	}
	if thousand > 0 {
		parts = append(parts, threeDigit(thousand)+" Thousand")
	}
	if hundred > 0 {
		parts = append(parts, threeDigit(hundred))
	}

	s := "Zero"
	if len(parts) > 0 {
		s = strings.Join(parts, " ")
	}
	if paise > 0 {
		s += " and " + twoDigit(paise) + " Paise"
	}
	return s + " Only"
}
