package consent_test

import (
	"testing"

	"github.com/celestina-app/celestina/internal/consent"
)

func TestSuggestAction(t *testing.T) {
	tests := []struct {
		name                 string
		level                consent.Level
		confidence           int
		requiresConfirmation bool
		want                 consent.Action
	}{
		{
			name:                 "negative always blocks",
			level:                consent.LevelNegative,
			confidence:           95,
			requiresConfirmation: true,
			want:                 consent.ActionBlock,
		},
		{
			name:                 "confirmation gate forces review",
			level:                consent.LevelExplicit,
			confidence:           95,
			requiresConfirmation: true,
			want:                 consent.ActionReview,
		},
		{
			name:                 "ambiguous without gate warns",
			level:                consent.LevelAmbiguous,
			confidence:           60,
			requiresConfirmation: false,
			want:                 consent.ActionWarn,
		},
		{
			name:                 "high confidence explicit approves",
			level:                consent.LevelExplicit,
			confidence:           95,
			requiresConfirmation: false,
			want:                 consent.ActionApprove,
		},
		{
			name:                 "explicit at threshold takes default branch",
			level:                consent.LevelExplicit,
			confidence:           80,
			requiresConfirmation: false,
			want:                 consent.ActionApprove,
		},
		{
			name:                 "low confidence reviews",
			level:                consent.LevelImplicit,
			confidence:           55,
			requiresConfirmation: false,
			want:                 consent.ActionReview,
		},
		{
			name:                 "implicit moderate confidence approves",
			level:                consent.LevelImplicit,
			confidence:           75,
			requiresConfirmation: false,
			want:                 consent.ActionApprove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := consent.SuggestAction(tt.level, tt.confidence, tt.requiresConfirmation)
			if got != tt.want {
				t.Errorf("action = %s, want %s", got, tt.want)
			}
		})
	}
}
