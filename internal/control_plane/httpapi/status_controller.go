package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"ecotronix-hub/internal/control_plane/httpapi/internal"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/infra/httpserver"
)

const (
	_defaultJournalLimit = 50
	_maxJournalLimit     = 500
)

func NewStatusController(
	status usecases.DispatchStatusService,
	telemetry usecases.TelemetryStore,
	commandTimeout time.Duration,
) *StatusController {
	return &StatusController{
		status:         status,
		telemetry:      telemetry,
		commandTimeout: commandTimeout,
	}
}

var _ httpserver.Controller = &StatusController{}

type StatusController struct {
	status         usecases.DispatchStatusService
	telemetry      usecases.TelemetryStore
	commandTimeout time.Duration
}

func (c *StatusController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /v1/pending", c.listPending())
	router.Handle("GET /v1/journal", c.listJournal())
	router.Handle("GET /v1/telemetry", c.listTelemetry())
	router.Handle("GET /v1/telemetry/{topic...}", c.getTelemetry())
}

func (c *StatusController) listPending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pending := c.status.Pending(r.Context())
		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToPendingCommandListResponse(pending, c.commandTimeout))
	}
}

func (c *StatusController) listJournal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := min(httpserver.GetIntQueryParam(r, "limit", _defaultJournalLimit), _maxJournalLimit)

		entries, err := c.status.RecentOutcomes(r.Context(), limit)
		if err != nil {
			slog.Error("listing journal", slog.Any("error", err))
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list journal")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.ToJournalListResponse(entries, limit))
	}
}

func (c *StatusController) listTelemetry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		readings, err := c.telemetry.All(r.Context())
		if err != nil {
			httpserver.ReplyWithError(w, http.StatusInternalServerError, "failed to list telemetry")
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, internal.TelemetryListResponse{Data: readings})
	}
}

func (c *StatusController) getTelemetry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := r.PathValue("topic")
		reading, ok := c.telemetry.Get(r.Context(), topic)
		if !ok {
			httpserver.ReplyWithError(w, http.StatusNotFound, "no reading for "+topic)
			return
		}

		httpserver.ReplyJSONResponse(w, http.StatusOK, reading)
	}
}
