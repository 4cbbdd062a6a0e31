// FILE: internal/pkg/serverutils/validate.go
package serverutils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and, on failure, returns an
// error whose message is already safe to surface to a caller.
func ValidateRequest(req any) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errs, ok := err.(validator.ValidationErrors); ok {
			fieldErrs = errs
		} else {
			return err
		}

		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, fe.Field()+" failed on '"+fe.Tag()+"'")
		}
		return NewAppError(422, strings.Join(messages, "; "))
	}
	return nil
}
