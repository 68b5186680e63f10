package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mikiasgoitom/Learnify/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// AppValidator implements usecasecontract.IValidator.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator returns a validator with the custom tags registered.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	_ = registerTags(v)
	return &AppValidator{validate: v}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	return av.validate.Var(email, "required,email")
}

// ValidatePasswordStrength checks if the password meets the strength requirements.
func (av *AppValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !containsUppercase(password) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !containsLowercase(password) {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !containsNumber(password) {
		return fmt.Errorf("password must contain at least one number")
	}
	if !containsSpecial(password) {
		return fmt.Errorf("password must contain at least one special character")
	}
	return nil
}

// ValidateStruct runs the `validate` tags of s.
func (av *AppValidator) ValidateStruct(s interface{}) error {
	return av.validate.Struct(s)
}

// RegisterCustomValidators adds the custom tags to gin's binding engine.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return registerTags(v)
}

func registerTags(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"containsuppercase": containsUppercaseFL,
		"containslowercase": containsLowercaseFL,
		"containsdigit":     containsNumberFL,
		"containssymbol":    containsSpecialFL,
		"courselevel":       courseLevelFL,
		"coursestatus":      courseStatusFL,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func containsUppercase(s string) bool {
	for _, char := range s {
		if unicode.IsUpper(char) {
			return true
		}
	}
	return false
}
func containsUppercaseFL(fl validator.FieldLevel) bool {
	return containsUppercase(fl.Field().String())
}

func containsLowercase(s string) bool {
	for _, char := range s {
		if unicode.IsLower(char) {
			return true
		}
	}
	return false
}
func containsLowercaseFL(fl validator.FieldLevel) bool {
	return containsLowercase(fl.Field().String())
}

func containsNumber(s string) bool {
	for _, char := range s {
		if unicode.IsNumber(char) {
			return true
		}
	}
	return false
}
func containsNumberFL(fl validator.FieldLevel) bool {
	return containsNumber(fl.Field().String())
}

func containsSpecial(s string) bool {
	for _, char := range s {
		if strings.ContainsRune("!@#$%^&*()_+-=[]{};:'\\|,.<>/?", char) {
			return true
		}
	}
	return false
}
func containsSpecialFL(fl validator.FieldLevel) bool {
	return containsSpecial(fl.Field().String())
}

// courseLevelFL accepts an empty value so the tag composes with omitempty.
func courseLevelFL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || entity.CourseLevel(s).IsValid()
}

func courseStatusFL(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || entity.CourseStatus(s).IsValid()
}
