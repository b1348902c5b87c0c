package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	apperrors "github.com/celebigilfatih/omt/pkg/errors"
)

// Validator checks input structs and reports violations by JSON field name.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// decimals validate as float64 so gte/lte tags apply
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		return entity.Stage(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("agegroup", func(fl validator.FieldLevel) bool {
		return entity.AgeGroup(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return entity.PaymentMethod(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
		return entity.ApplicationStatus(fl.Field().String()).Valid()
	})

	return &Validator{validate: v}
}

// Check returns the violations of in. An empty result means valid.
func (v *Validator) Check(in interface{}) []apperrors.FieldError {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath strips the struct name from the namespace: Input.ageGroups[0] -> ageGroups[0].
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "stage":
		return "must be one of STAGE_1, STAGE_2, STAGE_3, STAGE_4, FINAL"
	case "agegroup":
		return "must be an age group between Y2012 and Y2022"
	case "paymentmethod":
		return "must be one of POS, IBAN, CASH, HAND_DELIVERY, MAIL_ORDER, HOTEL_PAYMENT"
	case "appstatus":
		return "must be one of PENDING, APPROVED, REJECTED"
	case "unique":
		return "must not contain duplicates"
	case "excludesall":
		return "must not contain spaces or slashes"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
