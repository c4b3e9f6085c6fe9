package bot

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var errSalaryFormat = errors.New("salary format")

var negotiableWords = []string{"договорная", "договорная зарплата", "по договорённости", "по договоренности", "kelishiladi", "-"}

// parseSalary reads "3000000", "3 000 000", "2000000-4000000" or a negotiable marker.
// Negotiable salaries come back as two nils.
func parseSalary(text string) (from *int64, to *int64, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, word := range negotiableWords {
		if text == word {
			return nil, nil, nil
		}
	}

	parts := strings.Split(text, "-")
	switch len(parts) {
	case 1:
		amount, ok := parseAmount(parts[0])
		if !ok {
			return nil, nil, errSalaryFormat
		}
		return &amount, nil, nil
	case 2:
		low, okLow := parseAmount(parts[0])
		high, okHigh := parseAmount(parts[1])
		if !okLow || !okHigh || low > high {
			return nil, nil, errSalaryFormat
		}
		return &low, &high, nil
	default:
		return nil, nil, errSalaryFormat
	}
}

// parseAmount keeps the digits of a human-typed amount: "от 3 000 000 сум" is 3000000.
func parseAmount(text string) (int64, bool) {
	var digits strings.Builder
	for _, r := range text {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 || digits.Len() > 15 {
		return 0, false
	}
	amount, err := strconv.ParseInt(digits.String(), 10, 64)
	return amount, err == nil
}
