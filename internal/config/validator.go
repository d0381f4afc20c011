package config

import (
	"BlogPublisher/pkg/validate"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	return validate.New()
}
