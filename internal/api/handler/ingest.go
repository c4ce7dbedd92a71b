package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hytaletravelers/playerstats/internal/api/request"
	"github.com/hytaletravelers/playerstats/internal/api/response"
	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/model"
)

// Publisher delivers validated game events to subscribers
type Publisher interface {
	Publish(event model.GameEvent)
}

// IngestHandler handles the host event ingestion endpoint
type IngestHandler struct {
	publisher Publisher
	clk       clock.Clock
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(publisher Publisher, clk clock.Clock) *IngestHandler {
	return &IngestHandler{
		publisher: publisher,
		clk:       clk,
	}
}

var knownEventTypes = map[model.EventType]bool{
	model.EventPlayerConnect:    true,
	model.EventPlayerDisconnect: true,
	model.EventDamage:           true,
	model.EventDeath:            true,
	model.EventBlockPlace:       true,
	model.EventBlockBreak:       true,
}

// Ingest handles POST /ingest/events
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req request.IngestEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	eventType := model.EventType(req.Type)
	if !knownEventTypes[eventType] {
		WriteError(w, NewInvalidRequestError("unknown event type"))
		return
	}

	if _, err := uuid.Parse(req.UUID); err != nil {
		WriteError(w, NewInvalidRequestError("uuid must be a valid UUID"))
		return
	}

	event := model.GameEvent{
		Type:     eventType,
		PlayerID: model.PlayerID(req.UUID),
		Username: req.Username,
	}

	if req.Timestamp > 0 {
		event.Timestamp = time.UnixMilli(req.Timestamp)
	} else {
		event.Timestamp = h.clk.Now()
	}

	if eventType == model.EventDamage {
		if req.Damage == nil {
			WriteError(w, NewInvalidRequestError("damage details are required"))
			return
		}
		event.Payload = model.DamagePayload{
			Amount:         req.Damage.Amount,
			VictimHealth:   req.Damage.VictimHealth,
			VictimIsPlayer: req.Damage.VictimIsPlayer,
			VictimName:     req.Damage.VictimName,
		}
	}

	h.publisher.Publish(event)

	response.JSON(w, http.StatusAccepted, nil)
}
