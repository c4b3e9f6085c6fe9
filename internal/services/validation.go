package services

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/nearby-jobs-bot/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"strings"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// required alone lets whitespace-only strings through
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validateDraft turns validator failures into ErrValidation naming the offending fields.
func validateDraft(draft any) error {
	err := validate.Struct(draft)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(models.ErrValidation, err.Error())
	}

	fields := lo.Map(validationErrors, func(fe validator.FieldError, _ int) string {
		return fe.Field()
	})
	return fmt.Errorf("%w: invalid fields: %s", models.ErrValidation, strings.Join(lo.Uniq(fields), ", "))
}
