package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santeck77/whatsapp-dabbaXpress/internal/catalog"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/dialogue"
)

func newComposer(mode Mode) *Composer {
	return New(catalog.Default(), "DabbaXpress", "dabba@paytm", 40, mode)
}

func composeOne(t *testing.T, c *Composer, r dialogue.Reply) Message {
	t.Helper()
	msgs := c.Compose(r)
	require.Len(t, msgs, 1)
	return msgs[0]
}

func TestCategoryPrompt(t *testing.T) {
	msg := composeOne(t, newComposer(ModeInteractive), dialogue.CategoryPrompt{})
	assert.Contains(t, msg.Text, "Welcome to DabbaXpress")
	require.Len(t, msg.Buttons, 2)
	assert.Equal(t, dialogue.IDCategoryBasics, msg.Buttons[0].ID)
	assert.Equal(t, dialogue.IDCategoryPremium, msg.Buttons[1].ID)

	msg = composeOne(t, newComposer(ModeText), dialogue.CategoryPrompt{})
	assert.Empty(t, msg.Buttons)
	assert.Contains(t, msg.Text, "1. Basics")
	assert.Contains(t, msg.Text, "2. Premium")
	assert.Contains(t, msg.Text, "Reply with 1 or 2.")
}

func TestMenuPrompt(t *testing.T) {
	msg := composeOne(t, newComposer(ModeInteractive), dialogue.MenuPrompt{Category: catalog.CategoryBasics})
	require.NotNil(t, msg.List)
	assert.Equal(t, "🍛 Basics Menu", msg.List.Header)
	assert.Equal(t, "Select", msg.List.ButtonText)
	require.Len(t, msg.List.Rows, 3)
	assert.Equal(t, Row{ID: "b1", Title: "Veg Thali", Description: "₹120"}, msg.List.Rows[0])

	msg = composeOne(t, newComposer(ModeInteractive), dialogue.MenuPrompt{Category: catalog.CategoryPremium})
	assert.Equal(t, "🍽️ Premium Menu", msg.List.Header)
	assert.Equal(t, Row{ID: "p3", Title: "Kaju Curry + Tandoori Roti", Description: "₹260"}, msg.List.Rows[2])

	msg = composeOne(t, newComposer(ModeText), dialogue.MenuPrompt{Category: catalog.CategoryBasics})
	assert.Nil(t, msg.List)
	assert.Contains(t, msg.Text, "1. Veg Thali – ₹120")
	assert.Contains(t, msg.Text, "3. Dal Tadka + Rice – ₹100")
}

func TestPaymentPrompt(t *testing.T) {
	prompt := dialogue.PaymentPrompt{Item: "Veg Thali", Amount: 120}

	msg := composeOne(t, newComposer(ModeInteractive), prompt)
	assert.Contains(t, msg.Text, "You selected Veg Thali – ₹120 ✅")
	require.Len(t, msg.Buttons, 2)
	assert.Equal(t, dialogue.IDPayUPI, msg.Buttons[0].ID)
	assert.Equal(t, dialogue.IDPayCOD, msg.Buttons[1].ID)

	msg = composeOne(t, newComposer(ModeText), prompt)
	assert.Empty(t, msg.Buttons)
	assert.Contains(t, msg.Text, "1. UPI")
	assert.Contains(t, msg.Text, "2. Cash on Delivery")
}

func TestUPIInstructions(t *testing.T) {
	msg := composeOne(t, newComposer(ModeInteractive), dialogue.UPIInstructions{Amount: 220, Reference: "1717243200000"})
	assert.Contains(t, msg.Text, "Amount: ₹220")
	assert.Contains(t, msg.Text, "UPI ID: dabba@paytm")
	assert.Contains(t, msg.Text, "upi://pay?")
	assert.Contains(t, msg.Text, "am=220")
	assert.Contains(t, msg.Text, "cu=INR")
	assert.Contains(t, msg.Text, "tid=1717243200000")
	assert.Contains(t, msg.Text, "pa=dabba%40paytm")
	assert.Contains(t, msg.Text, "reply: PAID")
}

func TestConfirmations(t *testing.T) {
	cod := composeOne(t, newComposer(ModeInteractive), dialogue.CODConfirmation{OrderID: "#12345", Item: "Veg Thali", Amount: 120})
	assert.Contains(t, cod.Text, "Order ID: #12345")
	assert.Contains(t, cod.Text, "Item: Veg Thali")
	assert.Contains(t, cod.Text, "Amount: ₹120")
	assert.Contains(t, cod.Text, "Payment: COD")
	assert.Contains(t, cod.Text, "Delivery Time: 40 mins")

	paid := composeOne(t, newComposer(ModeText), dialogue.PaymentConfirmation{OrderID: "#54321", Item: "Veg Biryani + Raita", Amount: 220})
	assert.Contains(t, paid.Text, "Payment received ✅")
	assert.Contains(t, paid.Text, "Order ID: #54321")
	assert.Contains(t, paid.Text, "Amount: ₹220")
	assert.Contains(t, paid.Text, "Delivery Time: 40 mins")
	assert.Empty(t, paid.Buttons)
	assert.Nil(t, paid.List)
}

func TestHelp(t *testing.T) {
	msg := composeOne(t, newComposer(ModeInteractive), dialogue.Help{})
	assert.Contains(t, msg.Text, "Hi (start)")
	assert.Contains(t, msg.Text, "PAID (after UPI)")
}
