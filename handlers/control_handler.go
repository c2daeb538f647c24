package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"ticket-marketplace/services"
)

type ControlHandler struct {
	lifecycle *services.Lifecycle
}

func NewControlHandler(lifecycle *services.Lifecycle) *ControlHandler {
	return &ControlHandler{lifecycle: lifecycle}
}

// Start brings the simulation up. Illegal transitions come back as 400
// with a plain-text message naming the reason.
func (h *ControlHandler) Start(c echo.Context) error {
	err := h.lifecycle.Start()
	switch {
	case err == nil:
		return c.String(http.StatusOK, "Ticket system started")
	case errors.Is(err, services.ErrAlreadyRunning):
		return c.String(http.StatusBadRequest, "Ticket system is already running. Please reset first.")
	case errors.Is(err, services.ErrMustReset):
		return c.String(http.StatusBadRequest, "All tickets have been sold. System must be reset before restarting.")
	case errors.Is(err, services.ErrNoConfiguration):
		return c.String(http.StatusBadRequest, "No system configuration found. Cannot start ticket system.")
	case errors.Is(err, services.ErrNoEvents):
		return c.String(http.StatusBadRequest, "No events configured. Cannot start ticket system.")
	default:
		slog.Error("starting ticket system failed", "error", err)
		return c.String(http.StatusInternalServerError, "Failed to start ticket system")
	}
}

func (h *ControlHandler) Stop(c echo.Context) error {
	err := h.lifecycle.Stop()
	switch {
	case err == nil:
		return c.String(http.StatusOK, "Ticket system stopped successfully")
	case errors.Is(err, services.ErrNotRunning):
		return c.String(http.StatusBadRequest, "Ticket system is not running.")
	default:
		slog.Error("stopping ticket system failed", "error", err)
		return c.String(http.StatusInternalServerError, "Failed to stop ticket system")
	}
}

// Reset returns the system to idle from any state. The stored
// configuration row survives, but its events are cleared, so a fresh
// configure is required before the next start.
func (h *ControlHandler) Reset(c echo.Context) error {
	if err := h.lifecycle.Reset(); err != nil {
		slog.Error("resetting ticket system failed", "error", err)
		return c.String(http.StatusInternalServerError, "Failed to reset ticket system")
	}
	return c.String(http.StatusOK, "Ticket system reset successfully")
}
