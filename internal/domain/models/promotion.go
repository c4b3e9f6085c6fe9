package models

import "fmt"

type PromotionType string

const (
	PromotionTop       PromotionType = "top"
	PromotionUrgent    PromotionType = "urgent"
	PromotionHighlight PromotionType = "highlight"
)

const DefaultPromotionDays = 7

var promotionPrices = map[PromotionType]int64{
	PromotionTop:       10000,
	PromotionUrgent:    15000,
	PromotionHighlight: 5000,
}

func PromotionTypes() []PromotionType {
	return []PromotionType{PromotionTop, PromotionUrgent, PromotionHighlight}
}

func ToPromotionType(s string) (PromotionType, error) {
	t := PromotionType(s)
	if _, ok := promotionPrices[t]; !ok {
		return "", fmt.Errorf("%w: unknown promotion type %q", ErrValidation, s)
	}
	return t, nil
}

// Price is in the board's currency units.
func (t PromotionType) Price() int64 {
	return promotionPrices[t]
}
