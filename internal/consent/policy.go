package consent

// Action is the suggested handling for a message after classification.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReview  Action = "review"
	ActionWarn    Action = "warn"
	ActionBlock   Action = "block"
)

const (
	approveConfidence = 80
	reviewConfidence  = 60
)

// SuggestAction maps a consent level, confidence, and the confirmation gate
// to the action the chat subsystem should take. Negation blocks regardless
// of everything else; the confirmation gate forces review. The ambiguous
// branch is defensive: ambiguous always requires confirmation, so in
// practice it is unreachable.
func SuggestAction(level Level, confidence int, requiresConfirmation bool) Action {
	switch {
	case level == LevelNegative:
		return ActionBlock
	case requiresConfirmation:
		return ActionReview
	case level == LevelAmbiguous:
		return ActionWarn
	case level == LevelExplicit && confidence > approveConfidence:
		return ActionApprove
	case confidence < reviewConfidence:
		return ActionReview
	default:
		return ActionApprove
	}
}
