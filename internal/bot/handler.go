package bot

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/santeck77/whatsapp-dabbaXpress/internal/compose"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/dialogue"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/intent"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/metrics"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/session"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/whatsapp"
)

// Sender delivers outbound messages to the provider. *whatsapp.Client
// satisfies it; tests substitute a fake.
type Sender interface {
	SendText(to, body string) error
	SendInteractiveButtons(to, body string, buttons []whatsapp.Button) error
	SendList(to, header, body, buttonText string, sections []whatsapp.Section) error
}

type Handler struct {
	sender   Sender
	store    session.Store
	locks    *session.Locks
	engine   *dialogue.Engine
	composer *compose.Composer
	log      zerolog.Logger
}

func NewHandler(sender Sender, store session.Store, locks *session.Locks, engine *dialogue.Engine, composer *compose.Composer, log zerolog.Logger) *Handler {
	return &Handler{
		sender:   sender,
		store:    store,
		locks:    locks,
		engine:   engine,
		composer: composer,
		log:      log,
	}
}

// HandleEvent advances the user's dialogue one step and delivers the
// resulting messages. Delivery failures are logged and skipped; the
// session still advances (at-most-once, best-effort delivery). The
// composed messages are returned for callers that need them.
func (h *Handler) HandleEvent(ctx context.Context, ev intent.InboundEvent) []compose.Message {
	var out []compose.Message

	err := h.locks.With(ev.UserID, func() error {
		sess, err := h.store.Get(ev.UserID)
		if err != nil {
			h.log.Error().Err(err).Str("user", ev.UserID).Msg("bot: session load failed")
			return nil
		}

		in := intent.Normalize(ev)
		res := h.engine.Handle(sess, in)
		h.log.Debug().
			Str("user", ev.UserID).
			Str("stage", string(sess.Stage)).
			Str("next_stage", string(res.Session.Stage)).
			Str("intent", in.Lower).
			Bool("terminal", res.Terminal).
			Msg("bot: handled event")

		for _, reply := range res.Replies {
			out = append(out, h.composer.Compose(reply)...)
			h.countOrder(reply)
		}
		for _, msg := range out {
			h.deliver(ev.UserID, msg)
		}

		if res.Terminal {
			if err := h.store.Delete(ev.UserID); err != nil {
				h.log.Error().Err(err).Str("user", ev.UserID).Msg("bot: session delete failed")
			}
			return nil
		}
		if err := h.store.Put(ev.UserID, res.Session); err != nil {
			h.log.Error().Err(err).Str("user", ev.UserID).Msg("bot: session save failed")
		}
		return nil
	})
	if err != nil {
		h.log.Error().Err(err).Str("user", ev.UserID).Msg("bot: event handling failed")
	}
	return out
}

func (h *Handler) deliver(to string, msg compose.Message) {
	var (
		kind string
		err  error
	)
	switch {
	case msg.List != nil:
		kind = "list"
		err = h.sender.SendList(to, msg.List.Header, msg.Text, msg.List.ButtonText, toSections(msg.List.Rows))
	case len(msg.Buttons) > 0:
		kind = "buttons"
		err = h.sender.SendInteractiveButtons(to, msg.Text, toButtons(msg.Buttons))
	default:
		kind = "text"
		err = h.sender.SendText(to, msg.Text)
	}

	metrics.OutboundMessage(kind, err == nil)
	if err != nil {
		h.log.Warn().Err(err).Str("user", to).Str("kind", kind).Msg("bot: delivery failed")
	}
}

func (h *Handler) countOrder(reply dialogue.Reply) {
	switch reply.(type) {
	case dialogue.CODConfirmation:
		metrics.OrderPlaced("cod")
	case dialogue.PaymentConfirmation:
		metrics.OrderPlaced("upi")
	}
}

func toButtons(buttons []compose.Button) []whatsapp.Button {
	wa := make([]whatsapp.Button, len(buttons))
	for i, b := range buttons {
		wa[i] = whatsapp.Button{
			Type:  "reply",
			Reply: whatsapp.ButtonReply{ID: b.ID, Title: b.Title},
		}
	}
	return wa
}

func toSections(rows []compose.Row) []whatsapp.Section {
	waRows := make([]whatsapp.SectionRow, len(rows))
	for i, r := range rows {
		waRows[i] = whatsapp.SectionRow{ID: r.ID, Title: r.Title, Description: r.Description}
	}
	return []whatsapp.Section{{Rows: waRows}}
}
