// Package validator hooks domain validations into gin's binding engine.
package validator

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/campfirehq/youthorg-api/pkg/fieldauth"
)

// RegisterCustom adds the "fieldpath" validation: the value must be a dotted
// kid record path known to the permission table. Call once at startup.
func RegisterCustom() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return engine.RegisterValidation("fieldpath", validFieldPath)
}

func validFieldPath(fl validator.FieldLevel) bool {
	path, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	// Admin sees the full field set, so its visible list doubles as the
	// registry of known paths.
	for _, known := range fieldauth.VisibleFields(fieldauth.RoleAdmin) {
		if known == path {
			return true
		}
	}
	return false
}
