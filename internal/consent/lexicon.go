// Package consent implements the consent verification engine: a
// deterministic, rule-based classifier that inspects an outgoing chat
// message and decides whether it demonstrates affirmative consent,
// negation, or ambiguity, and what action should follow before the
// message reaches its recipient.
package consent

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Lexicon holds the static pattern tables the engine matches against.
// It is read-only after construction; a single instance is built at
// startup and shared across all analyzer invocations.
type Lexicon struct {
	// Primary consent classes. A message may match more than one class;
	// patterns are never deduplicated across classes.
	Affirmative []string `toml:"affirmative"`
	Negative    []string `toml:"negative"`
	Ambiguous   []string `toml:"ambiguous"`

	// Secondary lexicons for the context analyzer, independent of the
	// consent classes.
	Positivity []string `toml:"positivity"`
	Negativity []string `toml:"negativity"`
	Urgent     []string `toml:"urgent"`
	Calm       []string `toml:"calm"`

	// Message categories that always force explicit confirmation,
	// regardless of textual content.
	SensitiveCategories []string `toml:"sensitive_categories"`
}

// Default returns the built-in Spanish lexicon.
func Default() *Lexicon {
	return &Lexicon{
		Affirmative: []string{
			"sí", "si quiero", "si acepto", "quiero", "acepto", "claro",
			"por supuesto", "de acuerdo", "me parece bien", "está bien",
			"esta bien", "vale", "ok", "okay", "perfecto", "adelante",
			"me encantaría", "me encantaria", "continuar", "continúa",
			"continua", "dale", "encantado", "encantada", "genial",
		},
		Negative: []string{
			"no", "no quiero", "no me interesa", "no me gusta", "detente",
			"para ya", "basta", "déjame", "dejame", "aléjate", "alejate",
			"suéltame", "sueltame", "nunca", "jamás", "jamas", "me incomoda",
			"no insistas", "stop",
		},
		Ambiguous: []string{
			"tal vez", "quizá", "quizás", "quizas", "no sé", "no estoy seguro",
			"no estoy segura", "puede ser", "más tarde", "mas tarde",
			"después", "despues", "luego", "depende", "déjame pensarlo",
			"dejame pensarlo", "lo pensaré", "lo pensare", "a lo mejor",
			"ya veremos", "mmm",
		},
		Positivity: []string{
			"bien", "genial", "perfecto", "feliz", "contento", "contenta",
			"me gusta", "encanta", "gracias", "quiero", "lindo", "linda",
			"bonito", "bonita", "excelente", "maravilloso", "maravillosa",
			"divertido", "divertida", "jaja", "jeje",
		},
		Negativity: []string{
			"mal", "triste", "enojado", "enojada", "molesto", "molesta",
			"miedo", "asco", "odio", "horrible", "detente", "basta",
			"aléjate", "alejate", "déjame", "dejame", "ya no", "no me gusta",
			"incómodo", "incomodo", "incómoda", "incomoda",
		},
		Urgent: []string{
			"urgente", "ahora mismo", "ya mismo", "rápido", "rapido",
			"inmediatamente", "apúrate", "apurate", "ya",
		},
		Calm: []string{
			"sin prisa", "con calma", "cuando quieras", "cuando puedas",
			"no hay prisa", "tranquilo", "tranquila", "despacio",
		},
		SensitiveCategories: []string{
			"intimate", "sexual", "meetup", "proposal", "location_share",
			"gallery_access", "image", "location", "video",
		},
	}
}

// Load reads a TOML lexicon file and merges it over the built-in default.
// Patterns from the file extend the default tables; they never replace them,
// so tuning deployments can only widen coverage.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	var overlay Lexicon
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	lex := Default()
	lex.merge(&overlay)
	return lex, nil
}

// SensitiveCategory reports whether the given message category always
// requires explicit consent. Matching is case-insensitive.
func (l *Lexicon) SensitiveCategory(category string) bool {
	if category == "" {
		return false
	}
	category = strings.ToLower(strings.TrimSpace(category))
	return slices.Contains(l.SensitiveCategories, category)
}

func (l *Lexicon) merge(overlay *Lexicon) {
	l.Affirmative = extend(l.Affirmative, overlay.Affirmative)
	l.Negative = extend(l.Negative, overlay.Negative)
	l.Ambiguous = extend(l.Ambiguous, overlay.Ambiguous)
	l.Positivity = extend(l.Positivity, overlay.Positivity)
	l.Negativity = extend(l.Negativity, overlay.Negativity)
	l.Urgent = extend(l.Urgent, overlay.Urgent)
	l.Calm = extend(l.Calm, overlay.Calm)
	l.SensitiveCategories = extend(l.SensitiveCategories, overlay.SensitiveCategories)
}

func extend(base, extra []string) []string {
	for _, p := range extra {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" || slices.Contains(base, p) {
			continue
		}
		base = append(base, p)
	}
	return base
}
