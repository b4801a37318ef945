package intent

import "strings"

// InboundEvent is a transport-agnostic inbound message, already extracted
// from the provider payload by the webhook layer. Text holds the first
// non-empty source (text body, button title, or interactive reply title).
// StructuredReplyID is set when the user tapped a button or list row.
type InboundEvent struct {
	UserID            string
	DisplayName       string
	Text              string
	StructuredReplyID string
}

// Intent is the normalized form the dialogue engine matches against.
type Intent struct {
	Raw          string // trimmed original text
	Lower        string // case-folded Raw
	StructuredID string // button/list row id, empty for freeform text
}

// Normalize canonicalizes an inbound event. Empty text is not an error;
// it flows through as a non-matching intent.
func Normalize(ev InboundEvent) Intent {
	raw := strings.TrimSpace(ev.Text)
	return Intent{
		Raw:          raw,
		Lower:        strings.ToLower(raw),
		StructuredID: ev.StructuredReplyID,
	}
}
