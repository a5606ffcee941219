package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/comparador/quote-aggregator/business/quoting/domain"
	"github.com/comparador/quote-aggregator/internal/apperror"
)

// BirthdayLayout is the accepted driver_birthday format.
const BirthdayLayout = time.DateOnly

const missingFieldsMessage = "Missing required fields: driver_birthday, car_type, car_use"

// CalculateRequest is the body of POST /api/v1/calculate.
type CalculateRequest struct {
	DriverBirthday *string `json:"driver_birthday"`
	CarType        *string `json:"car_type"`
	CarUse         *string `json:"car_use"`
}

// Validator turns a request body into a domain.QuoteRequest.
type Validator struct {
	now func() time.Time
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithClock sets the clock used to compute the driver age.
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValidator creates a Validator using the wall clock.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// DecodeAndValidate parses a JSON body and validates it. A body that is
// not a JSON object is reported as missing every required field.
func (v *Validator) DecodeAndValidate(body []byte) (domain.QuoteRequest, error) {
	var in CalculateRequest
	if err := json.Unmarshal(bytes.TrimSpace(body), &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.QuoteRequest{}, apperror.Validation(apperror.CodeInvalidInput,
				fmt.Sprintf("Invalid %s: expected a string", typeErr.Field))
		}
		return domain.QuoteRequest{}, apperror.Validation(apperror.CodeRequiredField, missingFieldsMessage)
	}
	return v.Validate(in)
}

// Validate checks required fields, car type, car use and birthday, in
// that order, and computes the driver age.
func (v *Validator) Validate(in CalculateRequest) (domain.QuoteRequest, error) {
	if in.DriverBirthday == nil || in.CarType == nil || in.CarUse == nil {
		return domain.QuoteRequest{}, apperror.Validation(apperror.CodeRequiredField, missingFieldsMessage)
	}

	carType, err := domain.ParseCarType(*in.CarType)
	if err != nil {
		return domain.QuoteRequest{}, err
	}
	carUse, err := domain.ParseCarUse(*in.CarUse)
	if err != nil {
		return domain.QuoteRequest{}, err
	}

	age, err := v.age(*in.DriverBirthday)
	if err != nil {
		return domain.QuoteRequest{}, err
	}

	return domain.QuoteRequest{DriverAge: age, CarType: carType, CarUse: carUse}, nil
}

func (v *Validator) age(birthday string) (int, error) {
	today := v.now()
	born, err := time.ParseInLocation(BirthdayLayout, birthday, today.Location())
	if err != nil {
		return 0, apperror.Validation(apperror.CodeInvalidBirthday,
			fmt.Sprintf("Invalid driver_birthday: %q. Expected format YYYY-MM-DD", birthday))
	}

	if born.After(today) {
		return 0, apperror.Validation(apperror.CodeInvalidBirthday, "driver_birthday cannot be in the future")
	}

	age := domain.AgeOn(born, today)
	if age < domain.MinimumDriverAge {
		return 0, apperror.New(apperror.CodeDriverUnderage)
	}
	return age, nil
}
