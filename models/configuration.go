package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EventInput is an event definition as submitted by a configure request.
type EventInput struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// SystemConfiguration holds the tunables for one simulation run. A
// configuration is immutable once accepted; changing it requires a reset.
type SystemConfiguration struct {
	MaxCapacity   int          `json:"maxCapacity"`
	TotalTickets  int          `json:"totalTickets"`
	ReleaseRate   int          `json:"releaseRate"`
	RetrievalRate int          `json:"retrievalRate"`
	Events        []EventInput `json:"events"`
}

// FieldError reports a single validation failure against a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return strings.Join(parts, "; ")
}

// Validate checks a submitted configuration and returns every violation
// with field-level detail. A nil result means the configuration is
// acceptable.
func (c SystemConfiguration) Validate() ValidationErrors {
	var errs ValidationErrors

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	if c.MaxCapacity <= 0 {
		add("maxCapacity", "Maximum ticket capacity must be a positive number")
	}
	if c.TotalTickets <= 0 {
		add("totalTickets", "Total tickets must be a positive number")
	}
	if c.ReleaseRate < 0 {
		add("releaseRate", "Release rate cannot be negative")
	}
	if c.RetrievalRate < 0 {
		add("retrievalRate", "Retrieval rate cannot be negative")
	}
	if c.MaxCapacity > 0 && c.TotalTickets > c.MaxCapacity {
		add("tickets", "Total tickets cannot exceed maximum ticket capacity")
	}

	if len(c.Events) == 0 {
		add("events", "At least one event must be configured")
		return errs
	}

	seen := make(map[string]bool, len(c.Events))
	for i, ev := range c.Events {
		if strings.TrimSpace(ev.Name) == "" {
			add(fmt.Sprintf("events[%d].name", i), "Event name cannot be empty")
			continue
		}
		if ev.Price.LessThanOrEqual(decimal.Zero) {
			add(fmt.Sprintf("events[%d].price", i), "Event price must be a positive number")
		}
		if seen[ev.Name] {
			add(fmt.Sprintf("events[%d].name", i), "Duplicate event names")
		}
		seen[ev.Name] = true
	}

	return errs
}
