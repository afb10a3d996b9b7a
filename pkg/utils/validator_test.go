package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleItem struct {
	Capacity int    `json:"capacity" validate:"min=1,max=20"`
	Shape    string `json:"shape" validate:"required,oneof=round square rect"`
}

type sampleBody struct {
	Name  string       `json:"name" validate:"required"`
	Items []sampleItem `json:"items" validate:"dive"`
}

func TestValidateStructUsesJSONPaths(t *testing.T) {
	errs := ValidateStruct(sampleBody{
		Items: []sampleItem{
			{Capacity: 4, Shape: "round"},
			{Capacity: 21, Shape: "oval"},
		},
	})

	assert.Equal(t, map[string]string{
		"name":              "This field is required",
		"items[1].capacity": "Maximum value is 20",
		"items[1].shape":    "Must be one of: round, square, rect",
	}, errs)
}

func TestValidateStructPasses(t *testing.T) {
	assert.Nil(t, ValidateStruct(sampleBody{Name: "ok"}))
}

func TestFormatValidationErrorsIsSorted(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{
		"b": "second",
		"a": "first",
	})
	assert.Equal(t, "a: first; b: second", msg)
}

func TestParseIntAndTotalPages(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("-2", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))

	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
}
