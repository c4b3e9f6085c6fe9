package models

import (
	"strconv"
	"strings"
)

var salaryTypeNames = map[SalaryType]string{
	SalaryMonthly: "в месяц",
	SalaryDaily:   "в день",
	SalaryHourly:  "в час",
}

// SalaryText renders the salary range the way it is shown to users, e.g. "от 2 000 000 до 3 500 000 сум в месяц".
func (v *Vacancy) SalaryText() string {
	var parts []string
	switch {
	case v.SalaryFrom != nil && v.SalaryTo != nil && *v.SalaryFrom == *v.SalaryTo:
		parts = append(parts, GroupDigits(*v.SalaryFrom))
	default:
		if v.SalaryFrom != nil {
			parts = append(parts, "от "+GroupDigits(*v.SalaryFrom))
		}
		if v.SalaryTo != nil {
			parts = append(parts, "до "+GroupDigits(*v.SalaryTo))
		}
	}

	if len(parts) == 0 {
		return "договорная"
	}

	text := strings.Join(parts, " ") + " сум"
	if name, ok := salaryTypeNames[v.SalaryType]; ok {
		text += " " + name
	}
	return text
}

// GroupDigits separates thousands with spaces.
func GroupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
