package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验失败时保留底层 ValidationErrors，响应层据此映射 400
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("field [%s] failed validation rule [%s]: %w",
				firstError.Field(),
				firstError.Tag(),
				vErrs)
		}
	}
	return nil
}
