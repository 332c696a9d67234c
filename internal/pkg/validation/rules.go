package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Field length limits shared by request tags and service checks
const (
	CenterNameMaxLength     = 255
	CenterLocationMaxLength = 255
	StudentNameMaxLength    = 255
	NationalIDMaxLength     = 12
	EmailMaxLength          = 254
	ProgramMaxLength        = 100
	RotationMaxLength       = 100
	SpecialtyMaxLength      = 100
	RequesterMaxLength      = 200
	WeekdayMaxLength        = 10
	ActivityMaxLength       = 200
)

// MaxInteger is the largest value an INTEGER column holds
const MaxInteger = math.MaxInt32

// Messages reported for failed rules
const (
	MsgRequired  = "This field is required."
	MsgBlank     = "This field may not be blank."
	MsgNull      = "This field may not be null."
	MsgEmail     = "Enter a valid email address."
	MsgClockTime = "Time has wrong format. Use hh:mm or hh:mm:ss."
)

var fieldValidator = validator.New()

// StringValidation checks a string value
type StringValidation struct {
	Value      string
	MaxLen     int
	AllowBlank bool
	Email      bool
}

// NewStringValidation creates a new string validation; blank values are
// rejected unless AllowBlank is set.
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{Value: value}
}

// WithMaxLength sets maximum length in characters
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithAllowBlank sets whether an empty value passes
func (v *StringValidation) WithAllowBlank(allow bool) *StringValidation {
	v.AllowBlank = allow
	return v
}

// WithEmail requires the value to be an email address
func (v *StringValidation) WithEmail() *StringValidation {
	v.Email = true
	return v
}

// Check returns the failure message, or "" when the value is valid
func (v *StringValidation) Check() string {
	if strings.TrimSpace(v.Value) == "" {
		if v.AllowBlank {
			return ""
		}
		return MsgBlank
	}

	if v.MaxLen > 0 && utf8.RuneCountInString(v.Value) > v.MaxLen {
		return fmt.Sprintf("Ensure this field has no more than %d characters.", v.MaxLen)
	}

	if v.Email && fieldValidator.Var(v.Value, "email") != nil {
		return MsgEmail
	}

	return ""
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	return v.Check() == ""
}

// NumericValidation checks an integer value against optional bounds
type NumericValidation struct {
	Value int
	min   *int
	max   *int
}

// NewNumericValidation creates a new numeric validation
func NewNumericValidation(value int) *NumericValidation {
	return &NumericValidation{Value: value}
}

// WithMin sets minimum value
func (v *NumericValidation) WithMin(min int) *NumericValidation {
	v.min = &min
	return v
}

// WithMax sets maximum value
func (v *NumericValidation) WithMax(max int) *NumericValidation {
	v.max = &max
	return v
}

// Check returns the failure message, or "" when the value is valid
func (v *NumericValidation) Check() string {
	if v.min != nil && v.Value < *v.min {
		return fmt.Sprintf("Ensure this value is greater than or equal to %d.", *v.min)
	}
	if v.max != nil && v.Value > *v.max {
		return fmt.Sprintf("Ensure this value is less than or equal to %d.", *v.max)
	}
	return ""
}

// Validate performs validation
func (v *NumericValidation) Validate() bool {
	return v.Check() == ""
}

// ChoiceMessage is reported for a value outside an enumeration
func ChoiceMessage(value string) string {
	return fmt.Sprintf("%q is not a valid choice.", value)
}
