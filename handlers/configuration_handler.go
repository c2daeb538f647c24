package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"ticket-marketplace/models"
	"ticket-marketplace/services"
	"ticket-marketplace/store"
)

type ConfigurationHandler struct {
	lifecycle *services.Lifecycle
	configs   *store.ConfigStore
	events    *store.EventStore
}

func NewConfigurationHandler(lifecycle *services.Lifecycle, configs *store.ConfigStore, events *store.EventStore) *ConfigurationHandler {
	return &ConfigurationHandler{
		lifecycle: lifecycle,
		configs:   configs,
		events:    events,
	}
}

// Configure accepts a full system configuration. Validation failures come
// back with field-level details; the system must be idle (never started,
// or reset) before it can be reconfigured. On success the previous events
// are replaced and the new configuration becomes current.
func (h *ConfigurationHandler) Configure(c echo.Context) error {
	var cfg models.SystemConfiguration
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "Invalid request body",
		})
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		slog.Warn("configuration validation failed", "errors", errs.Error())
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "Configuration validation failed",
			"details": errs,
		})
	}

	if h.lifecycle.State() != services.StateIdle {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "Ticket system must be reset before it can be reconfigured.",
		})
	}

	if err := h.events.ReplaceAll(cfg.Events); err != nil {
		slog.Error("storing events failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "An unexpected error occurred during configuration",
		})
	}
	if err := h.configs.Put(cfg); err != nil {
		slog.Error("storing configuration failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "An unexpected error occurred during configuration",
		})
	}

	names := make([]string, 0, len(cfg.Events))
	for _, ev := range cfg.Events {
		names = append(names, ev.Name)
	}

	slog.Info("system configured",
		"maxCapacity", cfg.MaxCapacity, "totalTickets", cfg.TotalTickets,
		"releaseRate", cfg.ReleaseRate, "retrievalRate", cfg.RetrievalRate,
		"events", names)

	return c.JSON(http.StatusOK, map[string]any{
		"message":       "System configured successfully",
		"maxCapacity":   cfg.MaxCapacity,
		"totalTickets":  cfg.TotalTickets,
		"releaseRate":   cfg.ReleaseRate,
		"retrievalRate": cfg.RetrievalRate,
		"events":        names,
	})
}
