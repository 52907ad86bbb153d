package consent

const (
	confidenceNoEvidence = 50
	confidenceBase       = 70

	explicitDominanceRatio = 0.7
	negativeDominanceRatio = 0.7
	ambiguousMajorityRatio = 0.5
)

// ScoreConfidence derives a 0-100 confidence value from the per-class match
// counts and the context sentiment. With no matches at all the evidence is
// moderate by definition: exactly 50.
func ScoreConfidence(counts MatchCounts, sentiment Sentiment) int {
	total := counts.Total()
	if total == 0 {
		return confidenceNoEvidence
	}

	confidence := confidenceBase

	explicitRatio := float64(counts.Explicit) / float64(total)
	negativeRatio := float64(counts.Negative) / float64(total)
	ambiguousRatio := float64(counts.Ambiguous) / float64(total)

	switch {
	case explicitRatio > explicitDominanceRatio:
		confidence = 90
	case negativeRatio > negativeDominanceRatio:
		confidence = 85
	case ambiguousRatio > ambiguousMajorityRatio:
		confidence = 60
	}

	switch sentiment {
	case SentimentPositive:
		confidence += 5
	case SentimentNegative:
		confidence -= 10
	}

	return clamp(confidence, 0, 100)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
