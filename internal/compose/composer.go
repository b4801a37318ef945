package compose

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/santeck77/whatsapp-dabbaXpress/internal/catalog"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/dialogue"
)

// Mode selects how decision-point prompts are rendered. Confirmations and
// help text are plain text in both modes.
type Mode string

const (
	ModeInteractive Mode = "interactive"
	ModeText        Mode = "text"
)

// Message is a transport-agnostic outbound message: a text body, plus
// either reply buttons or a list menu when interactive.
type Message struct {
	Text    string
	Buttons []Button
	List    *List
}

type Button struct {
	ID    string
	Title string
}

type List struct {
	Header     string
	ButtonText string
	Rows       []Row
}

type Row struct {
	ID          string
	Title       string
	Description string
}

// Composer renders engine replies into outbound messages. It is pure:
// output depends only on the reply and the injected configuration.
type Composer struct {
	catalog *catalog.Catalog
	brand   string
	upiID   string
	etaMins int
	mode    Mode
}

func New(cat *catalog.Catalog, brand, upiID string, etaMins int, mode Mode) *Composer {
	return &Composer{catalog: cat, brand: brand, upiID: upiID, etaMins: etaMins, mode: mode}
}

func (c *Composer) Compose(r dialogue.Reply) []Message {
	switch r := r.(type) {
	case dialogue.CategoryPrompt:
		return []Message{c.categoryPrompt()}
	case dialogue.MenuPrompt:
		return []Message{c.menuPrompt(r.Category)}
	case dialogue.PaymentPrompt:
		return []Message{c.paymentPrompt(r)}
	case dialogue.UPIInstructions:
		return []Message{c.upiInstructions(r)}
	case dialogue.CODConfirmation:
		return []Message{c.codConfirmation(r)}
	case dialogue.PaymentConfirmation:
		return []Message{c.paymentConfirmation(r)}
	case dialogue.Help:
		return []Message{c.help()}
	}
	return nil
}

func (c *Composer) categoryPrompt() Message {
	body := fmt.Sprintf("Welcome to %s 🍴\nPlease choose a category:", c.brand)
	if c.mode == ModeText {
		return Message{Text: body + "\n1. Basics\n2. Premium\n\nReply with 1 or 2."}
	}
	return Message{
		Text: body,
		Buttons: []Button{
			{ID: dialogue.IDCategoryBasics, Title: "1️⃣ Basics"},
			{ID: dialogue.IDCategoryPremium, Title: "2️⃣ Premium"},
		},
	}
}

func (c *Composer) menuPrompt(cat catalog.Category) Message {
	header := "🍛 Basics Menu"
	if cat == catalog.CategoryPremium {
		header = "🍽️ Premium Menu"
	}
	items := c.catalog.Items(cat)

	if c.mode == ModeText {
		var b strings.Builder
		b.WriteString(header + "\nChoose an item:\n")
		for i, it := range items {
			fmt.Fprintf(&b, "%d. %s – %s\n", i+1, it.Name, rupees(it.Price))
		}
		b.WriteString("\nReply with 1, 2 or 3.")
		return Message{Text: b.String()}
	}

	rows := make([]Row, len(items))
	for i, it := range items {
		rows[i] = Row{ID: it.Code, Title: it.Name, Description: rupees(it.Price)}
	}
	return Message{
		Text: "Choose an item",
		List: &List{Header: header, ButtonText: "Select", Rows: rows},
	}
}

func (c *Composer) paymentPrompt(r dialogue.PaymentPrompt) Message {
	body := fmt.Sprintf("You selected %s – %s ✅\nChoose payment:", r.Item, rupees(r.Amount))
	if c.mode == ModeText {
		return Message{Text: body + "\n1. UPI\n2. Cash on Delivery\n\nReply with 1 or 2."}
	}
	return Message{
		Text: body,
		Buttons: []Button{
			{ID: dialogue.IDPayUPI, Title: "1️⃣ UPI"},
			{ID: dialogue.IDPayCOD, Title: "2️⃣ Cash on Delivery"},
		},
	}
}

func (c *Composer) upiInstructions(r dialogue.UPIInstructions) Message {
	link := c.upiLink(r.Amount, r.Reference)
	body := fmt.Sprintf("💳 UPI Payment\n\n"+
		"Amount: %s\n"+
		"UPI ID: %s\n\n"+
		"📱 iPhone Users:\n"+
		"1. Open your UPI app (PhonePe, GPay, Paytm)\n"+
		"2. Enter UPI ID: %s\n"+
		"3. Enter amount: %s\n"+
		"4. Add note: Order from %s\n\n"+
		"🤖 Android Users:\nClick this link: %s\n\n"+
		"💡 Alternative for all users:\n"+
		"Copy this UPI ID: %s\n"+
		"And amount: %s\n\n"+
		"Payment done ho jaye to reply: PAID",
		rupees(r.Amount), c.upiID, c.upiID, rupees(r.Amount), c.brand, link, c.upiID, rupees(r.Amount))
	return Message{Text: body}
}

// upiLink builds the upi://pay deep link understood by Indian payment apps.
func (c *Composer) upiLink(amount int, reference string) string {
	q := url.Values{}
	q.Set("pa", c.upiID)
	q.Set("pn", c.brand)
	q.Set("am", strconv.Itoa(amount))
	q.Set("cu", "INR")
	q.Set("tid", reference)
	return "upi://pay?" + q.Encode()
}

func (c *Composer) codConfirmation(r dialogue.CODConfirmation) Message {
	return Message{Text: fmt.Sprintf("Your order has been placed ✅\n"+
		"Order ID: %s\n"+
		"Item: %s\n"+
		"Amount: %s\n"+
		"Payment: COD\n"+
		"Delivery Time: %d mins 🚚\n"+
		"Thank you for choosing %s 🍴",
		r.OrderID, r.Item, rupees(r.Amount), c.etaMins, c.brand)}
}

func (c *Composer) paymentConfirmation(r dialogue.PaymentConfirmation) Message {
	return Message{Text: fmt.Sprintf("Payment received ✅\n"+
		"Order ID: %s\n"+
		"Item: %s\n"+
		"Amount: %s\n"+
		"Delivery Time: %d mins 🚚\n"+
		"Thank you for your payment! 🍴",
		r.OrderID, r.Item, rupees(r.Amount), c.etaMins)}
}

func (c *Composer) help() Message {
	if c.mode == ModeText {
		return Message{Text: "Type:\n• Hi (start)\n• PAID (after UPI)\n• Or reply with one of the shown options."}
	}
	return Message{Text: "Type:\n• Hi (start)\n• PAID (after UPI)\n• Or choose buttons shown."}
}

func rupees(amount int) string {
	return fmt.Sprintf("₹%d", amount)
}
