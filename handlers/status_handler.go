package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v5"

	"ticket-marketplace/services"
	"ticket-marketplace/store"
)

type StatusHandler struct {
	pool    *services.TicketPool
	configs *store.ConfigStore
	events  *store.EventStore
}

func NewStatusHandler(pool *services.TicketPool, configs *store.ConfigStore, events *store.EventStore) *StatusHandler {
	return &StatusHandler{
		pool:    pool,
		configs: configs,
		events:  events,
	}
}

// SystemStatus reports the current configuration and its events, or 404
// when nothing has been configured yet.
func (h *StatusHandler) SystemStatus(c echo.Context) error {
	cfg, err := h.configs.Current()
	if err != nil {
		slog.Error("loading configuration failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "Unable to retrieve system status",
		})
	}
	if cfg == nil {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error": "No system configuration available",
		})
	}

	events, err := h.events.All()
	if err != nil {
		slog.Error("loading events failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error": "Unable to retrieve system status",
		})
	}
	if len(events) == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error": "No events available",
		})
	}

	eventDetails := make([]map[string]any, 0, len(events))
	for _, ev := range events {
		eventDetails = append(eventDetails, map[string]any{
			"name":  ev.Name,
			"price": ev.Price,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalTickets":  cfg.TotalTickets,
		"releaseRate":   cfg.ReleaseRate,
		"retrievalRate": cfg.RetrievalRate,
		"maxCapacity":   cfg.MaxCapacity,
		"events":        eventDetails,
	})
}

// TicketAvailability reports per-event pool counts and the counter triple
// from one consistent snapshot. Configured events with nothing pooled show
// an explicit zero.
func (h *StatusHandler) TicketAvailability(c echo.Context) error {
	snapshot := h.pool.Snapshot()

	availability := snapshot.Availability
	if events, err := h.events.All(); err == nil {
		for _, ev := range events {
			if _, ok := availability[ev.Name]; !ok {
				availability[ev.Name] = 0
			}
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"availability":   availability,
		"ticketsAdded":   snapshot.TicketsAdded,
		"currentTickets": snapshot.CurrentTickets,
		"ticketsSold":    snapshot.TicketsSold,
	})
}
