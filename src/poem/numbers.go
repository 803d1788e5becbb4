package poem

import (
	"strconv"
	"strings"
)

// MaxSpelledNumber is the largest number SpellNumber writes out.
const MaxSpelledNumber = 999_999_999_999

var (
	ones = []string{
		"", "one", "two", "three", "four", "five",
		"six", "seven", "eight", "nine",
	}
	teens = []string{
		"ten", "eleven", "twelve", "thirteen", "fourteen",
		"fifteen", "sixteen", "seventeen", "eighteen", "nineteen",
	}
	tens = []string{
		"", "", "twenty", "thirty", "forty", "fifty",
		"sixty", "seventy", "eighty", "ninety",
	}
	scales = []struct {
		size int
		name string
	}{
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
	}
)

// SpellNumber writes a string of decimal digits out in English words, e.g. "25" becomes
// "twenty five". ok is false for non-digit input and numbers above MaxSpelledNumber.
func SpellNumber(digits string) (string, bool) {
	if !isDigits(digits) {
		return "", false
	}
	number, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || number > MaxSpelledNumber {
		return "", false
	}
	if number == 0 {
		return "zero", true
	}
	n := int(number)
	var parts []string
	for _, scale := range scales {
		if n >= scale.size {
			parts = append(parts, spellUnderThousand(n/scale.size)+" "+scale.name)
			n %= scale.size
		}
	}
	if n > 0 {
		parts = append(parts, spellUnderThousand(n))
	}
	return strings.Join(parts, " "), true
}

func spellUnderThousand(n int) string {
	if n < 100 {
		return spellUnderHundred(n)
	}
	result := ones[n/100] + " hundred"
	if n%100 > 0 {
		result += " " + spellUnderHundred(n%100)
	}
	return result
}

func spellUnderHundred(n int) string {
	switch {
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	}
	result := tens[n/10]
	if n%10 > 0 {
		result += " " + ones[n%10]
	}
	return result
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
