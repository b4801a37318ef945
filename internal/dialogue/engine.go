package dialogue

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/santeck77/whatsapp-dabbaXpress/internal/catalog"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/intent"
	"github.com/santeck77/whatsapp-dabbaXpress/internal/session"
)

// Button and list-row ids sent in interactive prompts and matched back on
// structured replies.
const (
	IDCategoryBasics  = "cat_basic"
	IDCategoryPremium = "cat_premium"
	IDPayUPI          = "pay_upi"
	IDPayCOD          = "pay_cod"
)

var paidRe = regexp.MustCompile(`\b(paid|payment done|done)\b`)

// Result is the outcome of one engine step. Terminal means the order is
// finalized and the caller must delete the session instead of storing it.
type Result struct {
	Session  session.Session
	Replies  []Reply
	Terminal bool
}

// Engine is the dialogue state machine. Handle is a pure function of
// (session, intent) apart from the injected rng and clock used for order
// ids and payment references.
type Engine struct {
	catalog *catalog.Catalog
	now     func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewEngine(cat *catalog.Catalog, rng *rand.Rand, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{catalog: cat, rng: rng, now: now}
}

// rule pairs a predicate with its transition. Rules for a stage are
// evaluated in fixed priority order; the first match wins, and anything
// unmatched falls through to the generic help reply with the stage
// unchanged.
type rule struct {
	when func(e *Engine, sess session.Session, in intent.Intent) bool
	then func(e *Engine, sess session.Session, in intent.Intent) Result
}

var stageRules = map[session.Stage][]rule{
	session.StageStart: {
		{when: anyInput, then: (*Engine).promptCategory},
	},
	session.StageCategory: {
		{when: wantsBasics, then: (*Engine).showBasicsMenu},
		{when: wantsPremium, then: (*Engine).showPremiumMenu},
	},
	session.StageMenuBasics: {
		{when: selectsItem, then: (*Engine).chooseItem},
	},
	session.StageMenuPremium: {
		{when: selectsItem, then: (*Engine).chooseItem},
	},
	session.StagePayment: {
		{when: wantsUPI, then: (*Engine).startUPI},
		{when: wantsCOD, then: (*Engine).placeCOD},
	},
	session.StageAwaitUPI: {
		{when: saidPaid, then: (*Engine).confirmPayment},
	},
}

// Handle advances the dialogue one step. It never mutates its input and
// never fails: unrecognized input yields the help reply.
func (e *Engine) Handle(sess session.Session, in intent.Intent) Result {
	for _, r := range stageRules[sess.Stage] {
		if r.when(e, sess, in) {
			return r.then(e, sess, in)
		}
	}
	return Result{Session: sess, Replies: []Reply{Help{}}}
}

// --- predicates ---
// Substring containment on "1"/"2" is deliberately permissive so loosely
// typed replies like "I want option 1 please" still match.

func anyInput(*Engine, session.Session, intent.Intent) bool { return true }

func wantsBasics(_ *Engine, _ session.Session, in intent.Intent) bool {
	return in.StructuredID == IDCategoryBasics ||
		strings.Contains(in.Lower, "basic") ||
		strings.Contains(in.Lower, "1")
}

func wantsPremium(_ *Engine, _ session.Session, in intent.Intent) bool {
	return in.StructuredID == IDCategoryPremium ||
		strings.Contains(in.Lower, "premium") ||
		strings.Contains(in.Lower, "2")
}

func selectsItem(e *Engine, sess session.Session, in intent.Intent) bool {
	_, ok := e.resolveItem(sess, in)
	return ok
}

func wantsUPI(_ *Engine, _ session.Session, in intent.Intent) bool {
	return in.StructuredID == IDPayUPI ||
		strings.Contains(in.Lower, "upi") ||
		strings.Contains(in.Lower, "1")
}

func wantsCOD(_ *Engine, _ session.Session, in intent.Intent) bool {
	return in.StructuredID == IDPayCOD ||
		strings.Contains(in.Lower, "cash") ||
		strings.Contains(in.Lower, "cod") ||
		strings.Contains(in.Lower, "2")
}

func saidPaid(_ *Engine, _ session.Session, in intent.Intent) bool {
	return paidRe.MatchString(in.Lower)
}

// resolveItem maps a menu-stage reply to a catalog item: structured row id
// first, then exact item name, then a numeric selector scoped to the
// session's category.
func (e *Engine) resolveItem(sess session.Session, in intent.Intent) (catalog.Item, bool) {
	if in.StructuredID != "" {
		if it, ok := e.catalog.ByCode(in.StructuredID); ok {
			return it, true
		}
	}
	if in.Raw != "" {
		if it, ok := e.catalog.ByName(in.Raw); ok {
			return it, true
		}
	}
	if pos, err := strconv.Atoi(in.Lower); err == nil {
		if it, ok := e.catalog.ByPosition(sess.Category, pos); ok {
			return it, true
		}
	}
	return catalog.Item{}, false
}

// --- transitions ---

func (e *Engine) promptCategory(sess session.Session, _ intent.Intent) Result {
	sess.Stage = session.StageCategory
	return Result{Session: sess, Replies: []Reply{CategoryPrompt{}}}
}

func (e *Engine) showBasicsMenu(sess session.Session, _ intent.Intent) Result {
	sess.Category = catalog.CategoryBasics
	sess.Stage = session.StageMenuBasics
	return Result{Session: sess, Replies: []Reply{MenuPrompt{Category: catalog.CategoryBasics}}}
}

func (e *Engine) showPremiumMenu(sess session.Session, _ intent.Intent) Result {
	sess.Category = catalog.CategoryPremium
	sess.Stage = session.StageMenuPremium
	return Result{Session: sess, Replies: []Reply{MenuPrompt{Category: catalog.CategoryPremium}}}
}

func (e *Engine) chooseItem(sess session.Session, in intent.Intent) Result {
	it, _ := e.resolveItem(sess, in)
	sess.Item = it.Name
	sess.Amount = it.Price
	sess.Stage = session.StagePayment
	return Result{Session: sess, Replies: []Reply{PaymentPrompt{Item: it.Name, Amount: it.Price}}}
}

func (e *Engine) startUPI(sess session.Session, _ intent.Intent) Result {
	sess.Stage = session.StageAwaitUPI
	return Result{Session: sess, Replies: []Reply{UPIInstructions{Amount: sess.Amount, Reference: e.paymentReference()}}}
}

func (e *Engine) placeCOD(sess session.Session, _ intent.Intent) Result {
	reply := CODConfirmation{OrderID: e.newOrderID(), Item: sess.Item, Amount: sess.Amount}
	return Result{Session: sess, Replies: []Reply{reply}, Terminal: true}
}

func (e *Engine) confirmPayment(sess session.Session, _ intent.Intent) Result {
	reply := PaymentConfirmation{OrderID: e.newOrderID(), Item: sess.Item, Amount: sess.Amount}
	return Result{Session: sess, Replies: []Reply{reply}, Terminal: true}
}

// newOrderID returns a human-facing id like #48213. Short and probably
// unique; orders are not deduplicated against prior ids.
func (e *Engine) newOrderID() string {
	e.mu.Lock()
	n := 10000 + e.rng.IntN(90000)
	e.mu.Unlock()
	return fmt.Sprintf("#%d", n)
}

// paymentReference tags the UPI deep link so a payment can be matched to
// an order in the provider logs.
func (e *Engine) paymentReference() string {
	return strconv.FormatInt(e.now().UnixMilli(), 10)
}
