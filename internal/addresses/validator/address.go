package validator

import (
	"errors"
	"fmt"
	"postaladdr/pkg/address"
	"postaladdr/pkg/logger"
	"postaladdr/pkg/model"
	"postaladdr/pkg/sanitizer"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type AddressValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAddressValidator(log *logger.Logger) *AddressValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("placekey", validatePlaceKey); err != nil {
		log.Fatal("Failed to register 'placekey' validator", "error", err)
	}
	v.RegisterStructValidation(validateStrictComponents, model.NormalizeRequest{})

	log.Info("Address validator initialized successfully")

	return &AddressValidator{
		validate: v,
		logger:   log,
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// validatePlaceKey accepts only values already in PlaceKey form.
func validatePlaceKey(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && sanitizer.PlaceKey(s) == s
}

func validateStrictComponents(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.NormalizeRequest)
	if !req.Strict {
		return
	}

	var unknown []string
	for label := range req.Components {
		if !address.Field(label).Known() {
			unknown = append(unknown, label)
		}
	}
	if len(unknown) == 0 {
		return
	}
	sort.Strings(unknown)
	sl.ReportError(req.Components, "components", "Components", "addressfield", strings.Join(unknown, ","))
}

// Validate checks any request, filter or record struct from pkg/model.
func (v *AddressValidator) Validate(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *AddressValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must contain at least %s entries", err.Field(), err.Param())
		case "max":
			if err.Kind() == reflect.String {
				message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
			} else {
				message = fmt.Sprintf("%s must contain at most %s entries", err.Field(), err.Param())
			}
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid object id", err.Field())
		case "placekey":
			message = fmt.Sprintf("%s must be a non-empty lowercase place key", err.Field())
		case "addressfield":
			message = fmt.Sprintf("unknown component labels: %s", err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Namespace(),
			Message: message,
		})
	}

	return validationErrors
}
