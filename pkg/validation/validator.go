// Package validation wraps go-playground/validator with a shared instance and
// readable field messages. Field names are reported by their json tag.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tair/foodgram/pkg/errs"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "koanf"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
		_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// Struct validates s and converts the first failure into an errs validation error
func Struct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.Validation("%s", err.Error())
	}

	fe := fieldErrs[0]
	return errs.ValidationField(fieldPath(fe), "%s", translate(fe))
}

// fieldPath drops the top-level struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

var simpleMessages = map[string]string{
	"required":      "%s is required",
	"email":         "%s must be a valid email address",
	"unique":        "%s must not contain duplicates",
	"url":           "%s must be a valid URL",
	"hostname_port": "%s must be host:port",
	"slug":          "%s may contain only letters, digits, hyphens and underscores",
}

var paramMessages = map[string]string{
	"min":   "%s must have at least %s",
	"max":   "%s must have at most %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"oneof": "%s must be one of: %s",
}

func translate(fe validator.FieldError) string {
	field := fieldPath(fe)
	if tmpl, ok := simpleMessages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[fe.Tag()]; ok {
		param := fe.Param()
		if fe.Tag() == "min" || fe.Tag() == "max" {
			switch fe.Kind() {
			case reflect.String:
				param += " character(s)"
			case reflect.Slice, reflect.Array, reflect.Map:
				param += " element(s)"
			}
		}
		return fmt.Sprintf(tmpl, field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
