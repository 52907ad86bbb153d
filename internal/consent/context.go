package consent

import "strings"

// MessageContext is the situational frame under which a message is evaluated.
type MessageContext string

const (
	ContextChat     MessageContext = "chat"
	ContextRequest  MessageContext = "request"
	ContextProposal MessageContext = "proposal"
)

// NormalizeContext maps arbitrary input to a known MessageContext,
// defaulting to chat.
func NormalizeContext(v string) MessageContext {
	switch MessageContext(strings.ToLower(strings.TrimSpace(v))) {
	case ContextRequest:
		return ContextRequest
	case ContextProposal:
		return ContextProposal
	default:
		return ContextChat
	}
}

// Sentiment is the coarse emotional tone of a conversation.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Urgency is the coarse pressure level of a conversation.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Metadata carries optional conversational context for the analyzer.
type Metadata struct {
	// Category is the free-form message category ("image", "location",
	// "intimate", ...). Membership in the lexicon's sensitive set forces
	// explicit confirmation.
	Category string
	// RecentMessages holds prior messages in the conversation, most
	// recent last. They contribute to sentiment only.
	RecentMessages []string
	// RelationshipStage describes how established the conversation is
	// ("new", "established", ...).
	RelationshipStage string
}

// ContextSignal is the output of the context analyzer.
type ContextSignal struct {
	Sentiment               Sentiment `json:"sentiment"`
	Urgency                 Urgency   `json:"urgency"`
	RequiresExplicitConsent bool      `json:"requires_explicit_consent"`
}

// recentMessageWindow bounds how much history contributes to sentiment.
const recentMessageWindow = 3

// AnalyzeContext derives sentiment, urgency, and the explicit-consent flag
// from the message and its conversational metadata. Any internal failure
// degrades to neutral/medium with explicit consent required: the analyzer
// fails closed, never open.
func AnalyzeContext(lex *Lexicon, message string, mctx MessageContext, meta Metadata) (signal ContextSignal) {
	defer func() {
		if r := recover(); r != nil {
			signal = failClosedSignal()
		}
	}()
	return analyzeContext(lex, message, mctx, meta)
}

func analyzeContext(lex *Lexicon, message string, mctx MessageContext, meta Metadata) ContextSignal {
	text := strings.ToLower(message)

	pos := lexiconHits(text, lex.Positivity)
	neg := lexiconHits(text, lex.Negativity)

	recent := meta.RecentMessages
	if len(recent) > recentMessageWindow {
		recent = recent[len(recent)-recentMessageWindow:]
	}
	for _, prior := range recent {
		prior = strings.ToLower(prior)
		pos += lexiconHits(prior, lex.Positivity)
		neg += lexiconHits(prior, lex.Negativity)
	}

	sentiment := SentimentNeutral
	switch {
	case pos > neg:
		sentiment = SentimentPositive
	case neg > pos:
		sentiment = SentimentNegative
	}

	urgency := UrgencyMedium
	switch {
	case lexiconHits(text, lex.Urgent) > 0:
		urgency = UrgencyHigh
	case lexiconHits(text, lex.Calm) > 0:
		urgency = UrgencyLow
	}

	return ContextSignal{
		Sentiment:               sentiment,
		Urgency:                 urgency,
		RequiresExplicitConsent: requiresExplicitConsent(lex, mctx, meta),
	}
}

// requiresExplicitConsent is true when the message category belongs to the
// sensitive set, when the declared context is a proposal, or when a request
// or proposal arrives in a relationship still in its earliest stage.
func requiresExplicitConsent(lex *Lexicon, mctx MessageContext, meta Metadata) bool {
	if lex.SensitiveCategory(meta.Category) {
		return true
	}
	if mctx == ContextProposal {
		return true
	}
	return earlyStage(meta.RelationshipStage) && mctx != ContextChat
}

func earlyStage(stage string) bool {
	switch strings.ToLower(strings.TrimSpace(stage)) {
	case "new", "initial", "nueva", "reciente":
		return true
	default:
		return false
	}
}

func lexiconHits(text string, patterns []string) int {
	total := 0
	for _, p := range patterns {
		total += countOccurrences(text, strings.ToLower(p))
	}
	return total
}

func failClosedSignal() ContextSignal {
	return ContextSignal{
		Sentiment:               SentimentNeutral,
		Urgency:                 UrgencyMedium,
		RequiresExplicitConsent: true,
	}
}
