// Package forms validates the registration and login forms before any
// storage call is made. Rules are declared with validator struct tags;
// failures surface as *common.ValidationError carrying the message shown
// to the user.
package forms

import (
	"errors"
	"reflect"

	"github.com/dmitrijs2005/moviedb/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Registration is the sign-up form.
type Registration struct {
	Username        string `form:"username" validate:"notblank"`
	Email           string `form:"email" validate:"notblank,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

// Login is the sign-in form.
type Login struct {
	Username string `form:"username" validate:"notblank"`
	Password string `form:"password" validate:"required"`
}

// messages maps "<form field>.<rule>" to the user-facing text.
var messages = map[string]string{
	"username.notblank":        "Username is required",
	"email.notblank":           "Email is required",
	"email.email":              "Please enter a valid email address",
	"password.required":        "Password is required",
	"password.min":             "Password must be at least 6 characters long",
	"confirm_password.eqfield": "Passwords do not match",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Check returns every failed rule in field order, one per field.
func Check(form any) []*common.ValidationError {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []*common.ValidationError{{Message: err.Error()}}
	}

	out := make([]*common.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Error()
		}
		out = append(out, &common.ValidationError{Field: fe.Field(), Message: msg})
	}
	return out
}

// Validate returns the first failed rule or nil.
func Validate(form any) error {
	if errs := Check(form); len(errs) > 0 {
		return errs[0]
	}
	return nil
}
