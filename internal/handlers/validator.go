package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator adapts go-playground/validator to echo.Validator so
// handlers can run struct-tag validation on bound DTOs via c.Validate.
type requestValidator struct {
	validate *validator.Validate
}

// NewValidator builds the validator wired into the Echo instance at startup.
func NewValidator() echo.Validator {
	return &requestValidator{validate: validator.New()}
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}
