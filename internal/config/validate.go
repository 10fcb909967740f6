package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var logLevels = []string{"DEBUG", "INFO", "WARN", "WARNING", "ERROR"}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("loglevel", validateLogLevel)
	return v
}

func validateLogLevel(fl validator.FieldLevel) bool {
	level := strings.ToUpper(fl.Field().String())
	if level == "" {
		return true
	}
	for _, l := range logLevels {
		if level == l {
			return true
		}
	}
	return false
}

// Validate checks the configuration and reports every invalid field
func (c *Config) Validate() error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s %s", fieldName(fe), validationMessage(fe)))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// fieldName turns "Config.Server.URL" into "server.url"
func fieldName(fe validator.FieldError) string {
	ns := strings.TrimPrefix(fe.Namespace(), "Config.")
	return strings.ToLower(ns)
}

// validationMessage converts validator errors into readable messages
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return "must not be negative"
	case "loglevel":
		return "must be one of " + strings.Join(logLevels, ", ")
	default:
		return "is invalid"
	}
}
