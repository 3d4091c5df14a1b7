package pdf

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// Latvian number words used for the amount-in-words line on printed
// invoices.
var (
	lvOnes = []string{
		"", "viens", "divi", "trīs", "četri", "pieci",
		"seši", "septiņi", "astoņi", "deviņi",
	}
	lvTeens = []string{
		"desmit", "vienpadsmit", "divpadsmit", "trīspadsmit", "četrpadsmit",
		"piecpadsmit", "sešpadsmit", "septiņpadsmit", "astoņpadsmit", "deviņpadsmit",
	}
	lvTens = []string{
		"", "desmit", "divdesmit", "trīsdesmit", "četrdesmit", "piecdesmit",
		"sešdesmit", "septiņdesmit", "astoņdesmit", "deviņdesmit",
	}
	lvHundreds = []string{
		"", "simts", "divsimt", "trīssimt", "četrsimt", "piecsimt",
		"sešsimt", "septiņsimt", "astoņsimt", "deviņsimt",
	}
)

func intToWordsLV(n int) string {
	if n == 0 {
		return "nulle"
	}

	var parts []string

	if n >= 1000 {
		thousands := n / 1000
		n %= 1000
		if thousands == 1 {
			parts = append(parts, "viens tūkstotis")
		} else {
			parts = append(parts, intToWordsLV(thousands)+" tūkstoši")
		}
	}

	if n >= 100 {
		parts = append(parts, lvHundreds[n/100])
		n %= 100
	}

	if n >= 10 && n <= 19 {
		parts = append(parts, lvTeens[n-10])
		n = 0
	} else {
		if n >= 20 {
			parts = append(parts, lvTens[n/10])
			n %= 10
		}
		if n > 0 {
			parts = append(parts, lvOnes[n])
		}
	}

	return strings.Join(parts, " ")
}

// AmountInWordsLV converts a EUR amount to Latvian words, for example
// 146.50 becomes "Simts četrdesmit seši euro un 50 centi".
func AmountInWordsLV(amount float64) string {
	euros := int(amount)
	cents := int(math.Round((amount - float64(euros)) * 100))

	runes := []rune(intToWordsLV(euros))
	runes[0] = unicode.ToUpper(runes[0])
	words := string(runes)

	centUnit := "centi"
	if cents == 1 {
		centUnit = "cents"
	}

	return fmt.Sprintf("%s euro un %02d %s", words, cents, centUnit)
}
