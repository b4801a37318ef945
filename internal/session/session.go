package session

import "github.com/santeck77/whatsapp-dabbaXpress/internal/catalog"

// Stage is the user's position in the ordering dialogue.
type Stage string

const (
	StageStart       Stage = "start"
	StageCategory    Stage = "category"
	StageMenuBasics  Stage = "menu_basics"
	StageMenuPremium Stage = "menu_premium"
	StagePayment     Stage = "payment"
	StageAwaitUPI    Stage = "await_upi"
)

// Session holds one user's in-flight order. Item and Amount are set once a
// menu item is chosen; Category once a category is chosen. A finalized
// order deletes the session, so there is no terminal stage value.
type Session struct {
	Stage    Stage            `json:"stage"`
	Category catalog.Category `json:"category,omitempty"`
	Item     string           `json:"item,omitempty"`
	Amount   int              `json:"amount,omitempty"`
}

// New returns the default session a fresh user starts from.
func New() Session {
	return Session{Stage: StageStart}
}

// Store maps user ids to sessions. Get returns a default session for
// unknown users without persisting it; only Put writes.
type Store interface {
	Get(userID string) (Session, error)
	Put(userID string, s Session) error
	Delete(userID string) error
	Close() error
}
