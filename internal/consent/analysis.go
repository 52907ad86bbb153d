package consent

import (
	"fmt"
	"strings"
	"time"
)

// Analysis is the immutable outcome of classifying a single message.
type Analysis struct {
	Level                Level          `json:"consent_level"`
	Confidence           int            `json:"confidence"`
	Keywords             []string       `json:"keywords"`
	Context              MessageContext `json:"context"`
	RequiresConfirmation bool           `json:"requires_confirmation"`
	SuggestedAction      Action         `json:"suggested_action"`
	Explanation          string         `json:"explanation"`
	Timestamp            time.Time      `json:"timestamp"`
}

// Analyzer classifies messages against an injected read-only lexicon.
// It holds no mutable state; a single instance may be shared across
// concurrent invocations.
type Analyzer struct {
	lexicon *Lexicon
}

// NewAnalyzer creates an Analyzer over the given lexicon. A nil lexicon
// falls back to the built-in default.
func NewAnalyzer(lex *Lexicon) *Analyzer {
	if lex == nil {
		lex = Default()
	}
	return &Analyzer{lexicon: lex}
}

// Lexicon returns the analyzer's lexicon.
func (a *Analyzer) Lexicon() *Lexicon {
	return a.lexicon
}

// Analyze runs the full classification pipeline: pattern matching, context
// analysis, consent level, confidence, confirmation gate, and action policy.
// Any input string, including empty, is classifiable; errors are reserved
// for genuine internal failures, which callers convert into Fallback.
func (a *Analyzer) Analyze(message string, mctx MessageContext, meta Metadata) (analysis Analysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrAnalysisFailed, r)
		}
	}()

	lex := a.lexicon
	if len(lex.Affirmative) == 0 && len(lex.Negative) == 0 && len(lex.Ambiguous) == 0 {
		return Analysis{}, ErrEmptyLexicon
	}

	match := Match(lex, message)
	signal := AnalyzeContext(lex, message, mctx, meta)

	level := ClassifyLevel(match.Counts, signal.Sentiment)
	confidence := ScoreConfidence(match.Counts, signal.Sentiment)
	keywords := match.Keywords()

	requiresConfirmation := level == LevelNegative ||
		level == LevelAmbiguous ||
		lex.SensitiveCategory(meta.Category) ||
		signal.RequiresExplicitConsent

	action := SuggestAction(level, confidence, requiresConfirmation)

	return Analysis{
		Level:                level,
		Confidence:           confidence,
		Keywords:             keywords,
		Context:              mctx,
		RequiresConfirmation: requiresConfirmation,
		SuggestedAction:      action,
		Explanation:          buildExplanation(level, confidence, keywords, requiresConfirmation),
		Timestamp:            time.Now().UTC(),
	}, nil
}

// Fallback returns the conservative analysis applied when classification
// cannot complete: ambiguous, moderate confidence, confirmation required,
// review suggested. The engine fails closed, never open.
func Fallback(mctx MessageContext) Analysis {
	return Analysis{
		Level:                LevelAmbiguous,
		Confidence:           confidenceNoEvidence,
		Keywords:             []string{},
		Context:              mctx,
		RequiresConfirmation: true,
		SuggestedAction:      ActionReview,
		Explanation: "No se pudo completar el análisis del mensaje; " +
			"se aplica la decisión más conservadora y se requiere confirmación explícita.",
		Timestamp: time.Now().UTC(),
	}
}

// buildExplanation produces the human-readable rationale. The text is in
// the platform language and safe to surface directly in the chat UI.
func buildExplanation(level Level, confidence int, keywords []string, requiresConfirmation bool) string {
	var b strings.Builder

	switch level {
	case LevelExplicit:
		fmt.Fprintf(&b, "Consentimiento explícito detectado (confianza %d%%).", confidence)
	case LevelImplicit:
		fmt.Fprintf(&b, "Consentimiento implícito según el tono de la conversación (confianza %d%%).", confidence)
	case LevelNegative:
		fmt.Fprintf(&b, "Negativa detectada: el mensaje no debe enviarse (confianza %d%%).", confidence)
	default:
		fmt.Fprintf(&b, "Respuesta ambigua (confianza %d%%).", confidence)
	}

	if len(keywords) > 0 {
		fmt.Fprintf(&b, " Palabras clave: %s.", strings.Join(keywords, ", "))
	}

	if requiresConfirmation && level != LevelNegative {
		b.WriteString(" Se requiere confirmación explícita antes del envío.")
	}

	return b.String()
}
