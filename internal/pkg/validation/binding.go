package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/qfddxs/Hospital/internal/app/models/dto"
	"github.com/qfddxs/Hospital/internal/pkg/helpers"
)

var registerOnce sync.Once

// RegisterGinValidators configures gin's validator engine: field names in
// errors follow the json tags, "clocktime" accepts HH:MM[:SS] and
// dto.Nullable fields validate their inner value. Safe to call repeatedly.
func RegisterGinValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		err = Configure(v)
	})
	return err
}

// Configure registers the custom rules on v
func Configure(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		return helpers.IsClockTime(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register clocktime rule: %w", err)
	}

	v.RegisterCustomTypeFunc(nullableValue,
		dto.Nullable[string]{},
		dto.Nullable[int64]{},
		dto.Nullable[dto.Date]{},
	)
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

type validationValuer interface {
	ValidationValue() interface{}
}

func nullableValue(field reflect.Value) interface{} {
	if v, ok := field.Interface().(validationValuer); ok {
		return v.ValidationValue()
	}
	return nil
}
