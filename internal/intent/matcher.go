package intent

import (
	"fmt"
	"strings"

	"github.com/dealspot/subscription-deals-site/internal/catalog"
)

// ActionType identifies a side effect the page should perform alongside a reply.
type ActionType string

// ActionOpenModal asks the page to open the checkout panel for a deal.
const ActionOpenModal ActionType = "open_modal"

// Action is an optional side effect carried by a Response.
type Action struct {
	Type   ActionType `json:"type"`
	DealID string     `json:"deal_id"`
}

// Response is the matcher's answer to one user turn.
type Response struct {
	Text   string  `json:"text"`
	Action *Action `json:"action,omitempty"`
}

// Intent labels the category a turn matched. Used for metrics and logging
// only; replies and actions are derived independently of the label.
type Intent string

const (
	IntentPurchase      Intent = "purchase"
	IntentInformational Intent = "informational"
	IntentGreeting      Intent = "greeting"
	IntentDeals         Intent = "deals"
	IntentPricing       Intent = "pricing"
	IntentUsage         Intent = "usage"
	IntentContact       Intent = "contact"
	IntentFallback      Intent = "fallback"
)

// purchaseVerbs are checked by literal containment, so "get" also fires
// inside unrelated words ("forget"). That imprecision is part of the
// matcher's contract; do not tighten it without a product decision.
var purchaseVerbs = []string{"buy", "purchase", "order", "get"}

// keywordGroup is one canned reply tried in order after the entity intents.
type keywordGroup struct {
	intent   Intent
	keywords []string
	reply    string
}

// Matcher maps free-text input to a canned reply and an optional action.
// It does literal substring matching against a fixed vocabulary; there is
// no tokenization, ranking, or learning.
type Matcher struct {
	catalog *catalog.Catalog
	groups  []keywordGroup
}

// NewMatcher builds a matcher over the given catalog.
func NewMatcher(c *catalog.Catalog) *Matcher {
	return &Matcher{
		catalog: c,
		groups: []keywordGroup{
			{
				intent:   IntentGreeting,
				keywords: []string{"hello", "hi"},
				reply:    "Hi there! How can I assist you with our deals today?",
			},
			{
				intent:   IntentDeals,
				keywords: []string{"deals"},
				reply:    "We offer great deals on iCloud+, Apple Music, Netflix, and Spotify. Which one are you interested in?",
			},
			{
				intent:   IntentPricing,
				keywords: []string{"price", "pricing"},
				reply:    "Prices vary per service. For example, Netflix Premium is $15.99/month. Which service's price are you interested in?",
			},
			{
				intent:   IntentUsage,
				keywords: []string{"how"},
				reply:    "You can browse our deals on the main page. Click 'BUY NOW' on any deal to see more details and proceed to checkout. You can also ask me to 'buy Netflix' directly!",
			},
			{
				intent:   IntentContact,
				keywords: []string{"contact"},
				reply:    "You can get in touch with us using the contact form on the 'About Us' page. We'll get back to you as soon as possible!",
			},
		},
	}
}

const fallbackReply = "I'm not sure how to answer that. I can help with questions about our deals (Netflix, Spotify, etc.), pricing, and purchasing. How can I help?"

// Respond classifies one user turn. Pure and deterministic: fixed input and
// fixed catalog always produce the same Response.
//
// The check order is observable behavior and must be preserved: entity
// extraction first, then purchase intent, then informational intent, then
// the keyword groups in declaration order. Reordering changes the answers
// to ambiguous inputs ("buy netflix" vs "tell me about netflix").
func (m *Matcher) Respond(input string) Response {
	resp, _ := m.Classify(input)
	return resp
}

// Classify is Respond plus the matched intent label.
func (m *Matcher) Classify(input string) (Response, Intent) {
	text := strings.ToLower(strings.TrimSpace(input))

	// Entity extraction: first catalog phrase contained in the text wins.
	var identified string
	for _, id := range m.catalog.IDs() {
		if strings.Contains(text, m.catalog.MustGet(id).Phrase) {
			identified = id
			break
		}
	}

	if containsAny(text, purchaseVerbs) {
		if identified != "" {
			entry := m.catalog.MustGet(identified)
			return Response{
				Text:   fmt.Sprintf("Great! I'll open the checkout for %s.", entry.Title),
				Action: &Action{Type: ActionOpenModal, DealID: identified},
			}, IntentPurchase
		}
		return Response{
			Text: "Awesome! Which subscription deal would you like to purchase? (e.g., Netflix, Spotify)",
		}, IntentPurchase
	}

	if identified != "" {
		entry := m.catalog.MustGet(identified)
		return Response{
			Text: fmt.Sprintf("%s The price is %s/month. You can say \"buy %s\" to purchase.", entry.Description, entry.Price, entry.Title),
		}, IntentInformational
	}

	for _, group := range m.groups {
		if containsAny(text, group.keywords) {
			return Response{Text: group.reply}, group.intent
		}
	}

	return Response{Text: fallbackReply}, IntentFallback
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
