// Package verifications implements the consent verification domain for
// Celestina. It runs the consent engine against outgoing chat messages,
// persists every decision with its rationale as an append-only audit trail,
// and serves verification history to the chat subsystem and moderation
// dashboards.
package verifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/celestina-app/celestina/internal/consent"
)

// PendingMessageID is the sentinel recorded when a message is evaluated
// before a message identifier exists.
const PendingMessageID = "pending"

// DefaultHistoryLimit bounds history queries when the caller supplies none.
const DefaultHistoryLimit = 50

// Verification is the persisted record of a single verify-before-send
// decision. Records are created once per send attempt and never mutated;
// a new attempt produces a new record.
type Verification struct {
	ID          uuid.UUID        `json:"id"`
	MessageID   string           `json:"message_id"`
	UserID      string           `json:"user_id"`
	RecipientID string           `json:"recipient_id"`
	Analysis    consent.Analysis `json:"analysis"`
	Verified    bool             `json:"verified"`
	VerifiedAt  *time.Time       `json:"verified_at"`
	CreatedAt   time.Time        `json:"created_at"`

	// Persisted reports whether the record reached storage. A failed write
	// never suppresses the decision itself, but operators need to see it.
	Persisted bool `json:"persisted"`
}

// VerifyCommand carries the data needed to verify a message before sending.
type VerifyCommand struct {
	SenderID    string `json:"sender_id"`
	RecipientID string `json:"recipient_id"`
	Message     string `json:"message"`
	Category    string `json:"category"`
	// Context is the situational frame: chat, request, or proposal.
	// Unknown values default to chat.
	Context string `json:"context"`
	// MessageID is optional; absent it falls back to PendingMessageID.
	MessageID string `json:"message_id"`

	RecentMessages    []string `json:"recent_messages,omitempty"`
	RelationshipStage string   `json:"relationship_stage,omitempty"`
}

// Metadata converts the command's optional context fields into engine
// metadata.
func (c VerifyCommand) Metadata() consent.Metadata {
	return consent.Metadata{
		Category:          c.Category,
		RecentMessages:    c.RecentMessages,
		RelationshipStage: c.RelationshipStage,
	}
}
