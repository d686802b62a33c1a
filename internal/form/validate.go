package form

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// Validation messages shown next to a field.
const (
	msgRequired     = "ce champ est obligatoire"
	msgNotANumber   = "doit être un nombre"
	msgNotAnInteger = "doit être un entier"
	msgNotPositive  = "doit être supérieur à zéro"
)

// FieldError is one field problem.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field problem of a draft. It matches
// mobcash.ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return mobcash.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap returns mobcash.ErrValidation.
func (e *ValidationError) Unwrap() error {
	return mobcash.ErrValidation
}

// Has reports whether field has a problem.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}

	return false
}

// Checker collects field problems while a draft is validated.
type Checker struct {
	fields []FieldError
}

// Add records a problem with field.
func (c *Checker) Add(field, message string) {
	c.fields = append(c.fields, FieldError{Field: field, Message: message})
}

func (c *Checker) merge(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		c.fields = append(c.fields, verr.Fields...)
	}
}

// Required checks that value is not blank.
func (c *Checker) Required(field, value string) {
	c.merge(Required(field, value))
}

// Amount checks that value parses as a finite number greater than zero.
func (c *Checker) Amount(field, value string) float64 {
	amount, err := ParseAmount(field, value)
	if err != nil {
		c.merge(err)

		return 0
	}

	if amount <= 0 {
		c.Add(field, msgNotPositive)
	}

	return amount
}

// Number checks that value parses as a finite number.
func (c *Checker) Number(field, value string) float64 {
	n, err := ParseAmount(field, value)
	c.merge(err)

	return n
}

// ID checks that value parses as an integer identifier.
func (c *Checker) ID(field, value string) int {
	id, err := ParseID(field, value)
	c.merge(err)

	return id
}

// Err returns the collected problems or nil.
func (c *Checker) Err() error {
	if len(c.fields) == 0 {
		return nil
	}

	return &ValidationError{Fields: c.fields}
}

// Required fails when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, msgRequired)
	}

	return nil
}

func invalid(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// ParseAmount parses a decimal amount. A comma is accepted as the decimal
// separator and spaces as thousands separators; NaN and infinities are
// rejected.
func ParseAmount(field, value string) (float64, error) {
	if err := Required(field, value); err != nil {
		return 0, err
	}

	normalized := strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", ".").Replace(strings.TrimSpace(value))

	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, invalid(field, msgNotANumber)
	}

	return amount, nil
}

// ParseID parses an integer identifier such as a network id.
func ParseID(field, value string) (int, error) {
	if err := Required(field, value); err != nil {
		return 0, err
	}

	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, invalid(field, msgNotAnInteger)
	}

	return id, nil
}
