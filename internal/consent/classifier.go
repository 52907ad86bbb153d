package consent

// Level is the four-way consent classification of a single message.
type Level string

const (
	LevelExplicit  Level = "explicit"
	LevelImplicit  Level = "implicit"
	LevelAmbiguous Level = "ambiguous"
	LevelNegative  Level = "negative"
)

// ClassifyLevel derives the consent level from per-class match counts and
// the context sentiment. The precedence is a deliberate tie-break policy,
// not an incidental ordering: negation dominates only with strictly more
// matches than affirmation; an exact tie between explicit and negative
// counts resolves to ambiguous when ambiguity patterns are present and
// otherwise falls through to the sentiment branch, exactly like a message
// with no matches at all.
func ClassifyLevel(counts MatchCounts, sentiment Sentiment) Level {
	switch {
	case counts.Negative > counts.Explicit && counts.Negative > 0:
		return LevelNegative
	case counts.Explicit > counts.Negative && counts.Explicit > 0:
		return LevelExplicit
	case counts.Ambiguous > 0:
		return LevelAmbiguous
	case sentiment == SentimentPositive:
		return LevelImplicit
	default:
		return LevelAmbiguous
	}
}
