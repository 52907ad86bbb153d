package verifications

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/celestina-app/celestina/pkg/query"
	"github.com/celestina-app/celestina/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "consent_verifications", "v").
	Project("id", "ID").
	Project("message_id", "MessageID").
	Project("user_id", "UserID").
	Project("recipient_id", "RecipientID").
	Project("consent_level", "ConsentLevel").
	Project("confidence", "Confidence").
	Project("keywords", "Keywords").
	Project("message_context", "MessageContext").
	Project("requires_confirmation", "RequiresConfirmation").
	Project("suggested_action", "SuggestedAction").
	Project("explanation", "Explanation").
	Project("verified", "Verified").
	Project("verified_at", "VerifiedAt").
	Project("created_at", "CreatedAt")

// defaultSort orders newest first; the record UUID breaks created_at ties
// so history pages stay stable.
var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

// Filters contains optional filtering criteria for verification queries.
// Nil fields are ignored. ConsentLevels and SuggestedActions match any of
// the provided values.
type Filters struct {
	UserID           *string  `json:"user_id,omitempty"`
	RecipientID      *string  `json:"recipient_id,omitempty"`
	ConsentLevels    []string `json:"consent_levels,omitempty"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
	Verified         *bool    `json:"verified,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserID", f.UserID).
		WhereEquals("RecipientID", f.RecipientID).
		WhereIn("ConsentLevel", toAnySlice(f.ConsentLevels)).
		WhereIn("SuggestedAction", toAnySlice(f.SuggestedActions)).
		WhereEquals("Verified", f.Verified)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// consent_level and suggested_action accept comma-separated values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if u := values.Get("user_id"); u != "" {
		f.UserID = &u
	}

	if r := values.Get("recipient_id"); r != "" {
		f.RecipientID = &r
	}

	f.ConsentLevels = splitValues(values.Get("consent_level"))
	f.SuggestedActions = splitValues(values.Get("suggested_action"))

	if v := values.Get("verified"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Verified = &b
		}
	}

	return f
}

func splitValues(v string) []string {
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func toAnySlice(values []string) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func scanVerification(s repository.Scanner) (Verification, error) {
	var v Verification
	var keywordsRaw []byte

	err := s.Scan(
		&v.ID,
		&v.MessageID,
		&v.UserID,
		&v.RecipientID,
		&v.Analysis.Level,
		&v.Analysis.Confidence,
		&keywordsRaw,
		&v.Analysis.Context,
		&v.Analysis.RequiresConfirmation,
		&v.Analysis.SuggestedAction,
		&v.Analysis.Explanation,
		&v.Verified,
		&v.VerifiedAt,
		&v.CreatedAt,
	)

	if err != nil {
		return v, err
	}

	if len(keywordsRaw) > 0 {
		if err := json.Unmarshal(keywordsRaw, &v.Analysis.Keywords); err != nil {
			return v, fmt.Errorf("unmarshal keywords: %w", err)
		}
	}

	if v.Analysis.Keywords == nil {
		v.Analysis.Keywords = []string{}
	}

	v.Analysis.Timestamp = v.CreatedAt
	v.Persisted = true

	return v, nil
}
