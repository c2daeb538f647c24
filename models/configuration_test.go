package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfiguration() SystemConfiguration {
	return SystemConfiguration{
		MaxCapacity:   10,
		TotalTickets:  10,
		ReleaseRate:   2,
		RetrievalRate: 2,
		Events: []EventInput{
			{Name: "A", Price: decimal.NewFromFloat(5.0)},
		},
	}
}

func findError(t *testing.T, errs ValidationErrors, field string) FieldError {
	t.Helper()
	for _, e := range errs {
		if e.Field == field {
			return e
		}
	}
	t.Fatalf("no validation error for field %q in %v", field, errs)
	return FieldError{}
}

func TestConfiguration_Valid(t *testing.T) {
	assert.Empty(t, validConfiguration().Validate())
}

func TestConfiguration_MaxCapacityMustBePositive(t *testing.T) {
	cfg := validConfiguration()
	cfg.MaxCapacity = 0

	errs := cfg.Validate()
	e := findError(t, errs, "maxCapacity")
	assert.Equal(t, "Maximum ticket capacity must be a positive number", e.Message)
}

func TestConfiguration_TotalTicketsMustBePositive(t *testing.T) {
	cfg := validConfiguration()
	cfg.TotalTickets = -1

	errs := cfg.Validate()
	e := findError(t, errs, "totalTickets")
	assert.Equal(t, "Total tickets must be a positive number", e.Message)
}

func TestConfiguration_TotalTicketsCannotExceedCapacity(t *testing.T) {
	cfg := validConfiguration()
	cfg.MaxCapacity = 5
	cfg.TotalTickets = 10

	errs := cfg.Validate()
	e := findError(t, errs, "tickets")
	assert.Equal(t, "Total tickets cannot exceed maximum ticket capacity", e.Message)
}

func TestConfiguration_RatesCannotBeNegative(t *testing.T) {
	cfg := validConfiguration()
	cfg.ReleaseRate = -1
	cfg.RetrievalRate = -2

	errs := cfg.Validate()
	assert.Equal(t, "Release rate cannot be negative", findError(t, errs, "releaseRate").Message)
	assert.Equal(t, "Retrieval rate cannot be negative", findError(t, errs, "retrievalRate").Message)
}

func TestConfiguration_RequiresEvents(t *testing.T) {
	cfg := validConfiguration()
	cfg.Events = nil

	errs := cfg.Validate()
	e := findError(t, errs, "events")
	assert.Equal(t, "At least one event must be configured", e.Message)
}

func TestConfiguration_EventNameRequired(t *testing.T) {
	cfg := validConfiguration()
	cfg.Events = []EventInput{{Name: "  ", Price: decimal.NewFromFloat(5.0)}}

	errs := cfg.Validate()
	e := findError(t, errs, "events[0].name")
	assert.Equal(t, "Event name cannot be empty", e.Message)
}

func TestConfiguration_EventPriceMustBePositive(t *testing.T) {
	cfg := validConfiguration()
	cfg.Events = []EventInput{{Name: "A", Price: decimal.Zero}}

	errs := cfg.Validate()
	e := findError(t, errs, "events[0].price")
	assert.Equal(t, "Event price must be a positive number", e.Message)
}

func TestConfiguration_DuplicateEventNames(t *testing.T) {
	cfg := validConfiguration()
	cfg.Events = []EventInput{
		{Name: "A", Price: decimal.NewFromFloat(5.0)},
		{Name: "A", Price: decimal.NewFromFloat(7.5)},
	}

	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "events[1].name", errs[0].Field)
	assert.Equal(t, "Duplicate event names", errs[0].Message)
}

func TestConfiguration_CollectsEveryViolation(t *testing.T) {
	cfg := SystemConfiguration{
		MaxCapacity:   0,
		TotalTickets:  0,
		ReleaseRate:   -1,
		RetrievalRate: -1,
	}

	errs := cfg.Validate()
	assert.Len(t, errs, 5)
}
