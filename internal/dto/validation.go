package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"kanmind/internal/model"
)

// RegisterValidators installs the custom binding tags and makes field errors
// report JSON names.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validators := map[string]validator.Func{
		"notblank": func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		},
		"taskstatus": func(fl validator.FieldLevel) bool {
			_, ok := model.ParseStatus(fl.Field().String())
			return ok
		},
		"taskpriority": func(fl validator.FieldLevel) bool {
			_, ok := model.ParsePriority(fl.Field().String())
			return ok
		},
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// FieldErrors turns a binding error into field -> message. ok is false when
// err is not a validation or JSON decoding problem.
func FieldErrors(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = fieldMessage(fe)
		}
		return out, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return map[string]string{field: "Invalid type, expected " + typeErr.Type.String() + "."}, true
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return map[string]string{"body": "Malformed JSON."}, true
	}
	return nil, false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "taskstatus":
		return "Status must be one of todo, in-progress, done."
	case "taskpriority":
		return "Priority must be one of low, medium, high."
	}
	return "Invalid value."
}
