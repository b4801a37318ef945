package dialogue

import "github.com/santeck77/whatsapp-dabbaXpress/internal/catalog"

// Reply is a semantic outbound message decided by the engine. Rendering —
// interactive payloads vs numbered plain text — is the composer's job.
type Reply interface {
	reply()
}

// CategoryPrompt greets the user and asks for a category.
type CategoryPrompt struct{}

// MenuPrompt lists the items of the chosen category.
type MenuPrompt struct {
	Category catalog.Category
}

// PaymentPrompt confirms the chosen item and asks for a payment method.
type PaymentPrompt struct {
	Item   string
	Amount int
}

// UPIInstructions carries everything needed to render the UPI deep link
// and manual-payment steps.
type UPIInstructions struct {
	Amount    int
	Reference string
}

// CODConfirmation is the terminal cash-on-delivery receipt.
type CODConfirmation struct {
	OrderID string
	Item    string
	Amount  int
}

// PaymentConfirmation is the terminal receipt after the user reports a
// completed UPI payment.
type PaymentConfirmation struct {
	OrderID string
	Item    string
	Amount  int
}

// Help is the generic fallback for unmatched input at any stage.
type Help struct{}

func (CategoryPrompt) reply()      {}
func (MenuPrompt) reply()          {}
func (PaymentPrompt) reply()       {}
func (UPIInstructions) reply()     {}
func (CODConfirmation) reply()     {}
func (PaymentConfirmation) reply() {}
func (Help) reply()                {}
