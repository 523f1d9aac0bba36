package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/httpapi/internal"
	"ecotronix-hub/internal/infra/async"
	"ecotronix-hub/internal/infra/httpserver"
)

const (
	invalidBodyErrMessage    = "invalid request body"
	dispatcherDownErrMessage = "dispatcher is not running"
	publishEventErrMessage   = "failed to publish event"
)

func NewIntakeController(broker async.InternalBroker) *IntakeController {
	return &IntakeController{
		broker: broker,
		now:    time.Now,
	}
}

var _ httpserver.Controller = &IntakeController{}

// IntakeController lets external recognizers push phrase and identity events
// over HTTP instead of through a sensing process.
type IntakeController struct {
	broker async.InternalBroker
	now    func() time.Time
}

func (c *IntakeController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /v1/phrases", c.postPhrase())
	router.Handle("POST /v1/identities", c.postIdentity())
}

func (c *IntakeController) postPhrase() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.PhraseRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		event := domain.PhraseEvent{
			Phrase:     body.Phrase,
			Language:   domain.Language(body.Language),
			ReceivedAt: c.now(),
		}
		if err := event.Validate(); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		c.publish(w, r, domain.TopicPhraseEvents, domain.EventPhraseRecognized, event, event.ReceivedAt)
	}
}

func (c *IntakeController) postIdentity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body internal.IdentityRequest
		if err := httpserver.DecodeJSONBody(r, &body); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, invalidBodyErrMessage)
			return
		}

		event := domain.IdentityEvent{
			User:       domain.UserName(body.User),
			ReceivedAt: c.now(),
		}
		if err := event.Validate(); err != nil {
			httpserver.ReplyWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		c.publish(w, r, domain.TopicIdentityEvents, domain.EventIdentityRecognized, event, event.ReceivedAt)
	}
}

func (c *IntakeController) publish(w http.ResponseWriter, r *http.Request, topic, name string, event any, receivedAt time.Time) {
	err := c.broker.Publish(r.Context(), async.BrokerTopicName(topic), async.BrokerMessage{
		Event: name,
		Value: event,
		Span:  httpserver.GetSpanFromContext(r),
	})
	switch {
	case errors.Is(err, async.ErrTopicNotFound):
		httpserver.ReplyWithError(w, http.StatusServiceUnavailable, dispatcherDownErrMessage)
		return
	case err != nil:
		slog.Error("publishing intake event", slog.String("topic", topic), slog.Any("error", err))
		httpserver.ReplyWithError(w, http.StatusInternalServerError, publishEventErrMessage)
		return
	}

	httpserver.ReplyJSONResponse(w, http.StatusAccepted, internal.AcceptedResponse{
		Topic:      topic,
		ReceivedAt: receivedAt,
	})
}
