package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/santeck77/whatsapp-dabbaXpress/internal/intent"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/metrics"
)

// EventHandler is called for each extracted inbound message.
type EventHandler func(ctx context.Context, ev intent.InboundEvent)

type WebhookHandler struct {
	verifyToken string
	onEvent     EventHandler
	log         zerolog.Logger
}

func NewWebhookHandler(verifyToken string, onEvent EventHandler, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		onEvent:     onEvent,
		log:         log,
	}
}

// HandleVerify handles the GET webhook verification from Meta.
// Reference: https://developers.facebook.com/docs/whatsapp/cloud-api/get-started#webhook-verification
func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("hub.mode")
	token := r.URL.Query().Get("hub.verify_token")
	challenge := r.URL.Query().Get("hub.challenge")

	if mode == "subscribe" && token == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(challenge))
		return
	}

	http.Error(w, "Forbidden", http.StatusForbidden)
}

// HandleIncoming processes incoming webhook POST notifications. Meta retries
// on non-2xx responses, so every outcome — including decode failures and
// payloads without messages — is acknowledged with 200.
func (h *WebhookHandler) HandleIncoming(w http.ResponseWriter, r *http.Request) {
	var payload WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.log.Warn().Err(err).Msg("webhook: failed to decode payload")
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			names := contactNames(change.Value.Contacts)
			for _, msg := range change.Value.Messages {
				metrics.InboundEvent(msg.Type)
				ev, ok := extractEvent(msg)
				if !ok {
					h.log.Debug().Str("type", msg.Type).Str("from", msg.From).Msg("webhook: no extractable message")
					continue
				}
				ev.DisplayName = names[msg.From]
				h.onEvent(r.Context(), ev)
			}
		}
	}

	w.WriteHeader(http.StatusOK)
}

// extractEvent pulls the message text out of the provider envelope. Source
// order: text body, template button title, interactive button reply title,
// interactive list reply title. Interactive replies also carry the tapped
// element's stable id.
func extractEvent(msg Message) (intent.InboundEvent, bool) {
	ev := intent.InboundEvent{UserID: msg.From}

	switch msg.Type {
	case "text":
		if msg.Text == nil {
			return ev, false
		}
		ev.Text = msg.Text.Body
	case "button":
		if msg.Button == nil {
			return ev, false
		}
		ev.Text = msg.Button.Text
	case "interactive":
		if msg.Interactive == nil {
			return ev, false
		}
		switch {
		case msg.Interactive.ButtonReply != nil:
			ev.Text = msg.Interactive.ButtonReply.Title
			ev.StructuredReplyID = msg.Interactive.ButtonReply.ID
		case msg.Interactive.ListReply != nil:
			ev.Text = msg.Interactive.ListReply.Title
			ev.StructuredReplyID = msg.Interactive.ListReply.ID
		default:
			return ev, false
		}
	default:
		return ev, false
	}

	return ev, true
}

func contactNames(contacts []Contact) map[string]string {
	names := make(map[string]string, len(contacts))
	for _, c := range contacts {
		names[c.WaID] = c.Profile.Name
	}
	return names
}
