// Package validator provides request validation utilities
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Init initializes the validator with custom validators
func Init() {
	once.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validate = v

			// Use JSON tags for field names in error messages
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				return name
			})

			_ = v.RegisterValidation("metricname", validateMetricName)
		}
	})
}

// Get returns the validator instance
func Get() *validator.Validate {
	Init()
	return validate
}

// validateMetricName checks that a metric name is limited to the character
// set that is safe to carry into analytical queries. Mirrors the store-side
// guard so bad names fail at the API boundary with a field-level message.
func validateMetricName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Let required handle empty
	}
	if strings.Contains(val, "--") {
		return false
	}
	for _, c := range val {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9') || c == '_' || c == '-' || c == '.') {
			return false
		}
	}
	return true
}
