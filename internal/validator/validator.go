// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The storage core treats the date key as an opaque unique string; the
// format below is the wire contract of the date collaborator at the HTTP
// boundary, checked before the key ever reaches the core.
var planDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsPlanDate reports whether s is a well-formed plan date key.
func IsPlanDate(s string) bool {
	return planDateRegex.MatchString(s)
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("plan_date", validatePlanDate)
	}
}

func validatePlanDate(fl validator.FieldLevel) bool {
	return IsPlanDate(fl.Field().String())
}
