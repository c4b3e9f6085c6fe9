package models

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func ptr[T any](v T) *T {
	return &v
}

func Test_GroupDigits(t *testing.T) {
	assert.Equal(t, "0", GroupDigits(0))
	assert.Equal(t, "999", GroupDigits(999))
	assert.Equal(t, "1 000", GroupDigits(1000))
	assert.Equal(t, "3 500 000", GroupDigits(3500000))
	assert.Equal(t, "-12 345", GroupDigits(-12345))
}

func Test_Vacancy_SalaryText(t *testing.T) {
	tests := []struct {
		name    string
		vacancy Vacancy
		want    string
	}{
		{"negotiable", Vacancy{SalaryType: SalaryMonthly}, "договорная"},
		{"range", Vacancy{SalaryFrom: ptr(int64(2000000)), SalaryTo: ptr(int64(3500000)), SalaryType: SalaryMonthly},
			"от 2 000 000 до 3 500 000 сум в месяц"},
		{"fixed", Vacancy{SalaryFrom: ptr(int64(150000)), SalaryTo: ptr(int64(150000)), SalaryType: SalaryDaily},
			"150 000 сум в день"},
		{"upper bound only", Vacancy{SalaryTo: ptr(int64(50000)), SalaryType: SalaryHourly}, "до 50 000 сум в час"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.vacancy.SalaryText())
		})
	}
}

func Test_Vacancy_EffectiveMaxSalary(t *testing.T) {
	assert.Equal(t, int64(0), (&Vacancy{}).EffectiveMaxSalary())
	assert.Equal(t, int64(300), (&Vacancy{SalaryFrom: ptr(int64(300))}).EffectiveMaxSalary())
	assert.Equal(t, int64(500), (&Vacancy{SalaryFrom: ptr(int64(300)), SalaryTo: ptr(int64(500))}).EffectiveMaxSalary())
}

func Test_Vacancy_Status(t *testing.T) {
	assert.Equal(t, StatusPending, (&Vacancy{IsActive: true}).Status())
	assert.Equal(t, StatusApproved, (&Vacancy{IsActive: true, IsApproved: true}).Status())
	assert.Equal(t, StatusInactive, (&Vacancy{IsActive: false, IsApproved: true}).Status())
}
