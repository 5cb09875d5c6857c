package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/restaurant-booking/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("date_ymd", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock_hm", func(fl validator.FieldLevel) bool {
		_, err := models.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// validateFields checks f and, when only is non-nil, keeps errors for those keys only.
// The booking date must not be earlier than today whenever it is checked.
func validateFields(f bookingFields, today models.Date, only map[string]bool) error {
	verr := NewValidationError()
	keep := func(field string) bool {
		return only == nil || only[field]
	}

	if err := validate.Struct(f); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate booking: %w", err)
		}
		for _, fe := range fieldErrs {
			if keep(fe.Field()) {
				verr.Add(fe.Field(), fieldMessage(fe))
			}
		}
	}

	if keep("booking_date") && len(verr.Fields["booking_date"]) == 0 {
		if date, err := models.ParseDate(f.BookingDate); err == nil && date.Before(today) {
			verr.Add("booking_date", "The booking date field must be a date after or equal to today.")
		}
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// validateStatus reports a ValidationError unless raw names a known status.
func validateStatus(raw string) (models.BookingStatus, error) {
	status := models.BookingStatus(strings.TrimSpace(raw))
	if status == "" {
		verr := NewValidationError()
		verr.Add("status", "The status field is required.")
		return "", verr
	}
	if !status.Valid() {
		verr := NewValidationError()
		verr.Add("status", "The selected status is invalid.")
		return "", verr
	}
	return status, nil
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	numeric := fe.Kind() == reflect.Int

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", label)
	case "max":
		if numeric {
			return fmt.Sprintf("The %s field must not be greater than %s.", label, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s characters.", label, fe.Param())
	case "min":
		if numeric {
			return fmt.Sprintf("The %s field must be at least %s.", label, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s characters.", label, fe.Param())
	case "date_ymd":
		return fmt.Sprintf("The %s field must match the format Y-m-d.", label)
	case "clock_hm":
		return fmt.Sprintf("The %s field must match the format H:i.", label)
	default:
		return fmt.Sprintf("The %s field is invalid.", label)
	}
}

// TypeMismatchMessage describes a JSON value of the wrong type for field.
func TypeMismatchMessage(field, expected string) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch expected {
	case "int", "int64", "uint", "float64":
		return fmt.Sprintf("The %s field must be an integer.", label)
	default:
		return fmt.Sprintf("The %s field must be a string.", label)
	}
}
