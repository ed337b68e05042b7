package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Title string `validate:"required,min=2"`
	Date  string `validate:"required,datetime=2006-01-02"`
	Time  string `validate:"omitempty,datetime=15:04"`
}

func TestValidateStructValid(t *testing.T) {
	errs := ValidateStruct(samplePayload{Title: "Yoga", Date: "2026-03-01", Time: "09:00"})
	assert.Nil(t, errs)
}

func TestValidateStructMissingFields(t *testing.T) {
	errs := ValidateStruct(samplePayload{})
	require.Len(t, errs, 2)
	assert.Equal(t, "Title", errs[0].Field)
	assert.Equal(t, "Title is required", errs[0].Message)
	assert.Equal(t, "Date", errs[1].Field)
}

func TestValidateStructBadTime(t *testing.T) {
	errs := ValidateStruct(samplePayload{Title: "Yoga", Date: "2026-03-01", Time: "9am"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Time", errs[0].Field)
	assert.Equal(t, "Time must match the format 15:04", errs[0].Message)
}
