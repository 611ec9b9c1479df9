package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/worktime/internal/common"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report JSON names so messages match what the caller sent
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateEntry checks that the required fields of in are present. prefix is
// prepended to the field name in the returned *common.ValidationError, e.g.
// "entries[3]".
func ValidateEntry(prefix string, in EntryInput) error {
	err := validatorInstance().Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return common.NewValidationError(prefix, err.Error())
	}

	fe := verrs[0]
	field := fe.Field()
	if prefix != "" {
		field = prefix + "." + field
	}
	if fe.Tag() == "required" {
		return common.NewValidationError(field, "is required")
	}
	return common.NewValidationError(field, fmt.Sprintf("failed on %q", fe.Tag()))
}
