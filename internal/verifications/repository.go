package verifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/celestina-app/celestina/internal/consent"
	"github.com/celestina-app/celestina/pkg/pagination"
	"github.com/celestina-app/celestina/pkg/query"
	"github.com/celestina-app/celestina/pkg/repository"
)

// maxBatchWorkers bounds concurrent engine runs for batch verification.
const maxBatchWorkers = 8

type repo struct {
	db           *sql.DB
	analyzer     *consent.Analyzer
	logger       *slog.Logger
	pagination   pagination.Config
	historyLimit int
}

// New creates a verification repository implementing the System interface.
// historyLimit bounds history queries when the caller supplies no limit;
// non-positive values fall back to DefaultHistoryLimit.
func New(
	db *sql.DB,
	analyzer *consent.Analyzer,
	logger *slog.Logger,
	pagination pagination.Config,
	historyLimit int,
) System {
	if historyLimit < 1 {
		historyLimit = DefaultHistoryLimit
	}
	return &repo{
		db:           db,
		analyzer:     analyzer,
		logger:       logger.With("system", "verifications"),
		pagination:   pagination,
		historyLimit: historyLimit,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination, r.historyLimit)
}

func (r *repo) VerifyBeforeSend(ctx context.Context, cmd VerifyCommand) *Verification {
	mctx := consent.NormalizeContext(cmd.Context)

	analysis, err := r.analyzer.Analyze(cmd.Message, mctx, cmd.Metadata())
	if err != nil {
		r.logger.Warn("analysis failed, applying conservative fallback",
			"user_id", cmd.SenderID,
			"error", err,
		)
		analysis = consent.Fallback(mctx)
	}

	messageID := cmd.MessageID
	if messageID == "" {
		messageID = PendingMessageID
	}

	verified := analysis.Level == consent.LevelExplicit || !analysis.RequiresConfirmation

	v := &Verification{
		ID:          uuid.New(),
		MessageID:   messageID,
		UserID:      cmd.SenderID,
		RecipientID: cmd.RecipientID,
		Analysis:    analysis,
		Verified:    verified,
		CreatedAt:   analysis.Timestamp,
	}
	if verified {
		at := analysis.Timestamp
		v.VerifiedAt = &at
	}

	// Exactly one write attempt. A storage outage must never suppress the
	// consent decision, so failures are logged and the record is returned
	// unpersisted.
	if err := r.insert(ctx, v); err != nil {
		r.logger.Warn("verification not persisted",
			"id", v.ID,
			"user_id", v.UserID,
			"consent_level", analysis.Level,
			"error", err,
		)
		v.Persisted = false
		return v
	}
	v.Persisted = true

	r.logger.Info("message verified",
		"id", v.ID,
		"user_id", v.UserID,
		"consent_level", analysis.Level,
		"confidence", analysis.Confidence,
		"suggested_action", analysis.SuggestedAction,
		"verified", v.Verified,
	)
	return v
}

func (r *repo) VerifyBatch(ctx context.Context, cmds []VerifyCommand) []*Verification {
	results := make([]*Verification, len(cmds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers(len(cmds)))

	for i := range cmds {
		g.Go(func() error {
			results[i] = r.VerifyBeforeSend(gctx, cmds[i])
			return nil
		})
	}

	// Goroutines never return errors; Wait only synchronizes completion.
	g.Wait()

	return results
}

func (r *repo) History(ctx context.Context, userID string, limit int) []Verification {
	if limit <= 0 {
		limit = r.historyLimit
	}

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", &userID)

	pageSQL, args := qb.BuildPage(1, limit)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, args, scanVerification)
	if err != nil {
		r.logger.Warn("history query failed",
			"user_id", userID,
			"error", err,
		)
		return []Verification{}
	}

	return items
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Verification], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereSearch(page.Search, "Explanation", "MessageID")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count verifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanVerification)
	if err != nil {
		return nil, fmt.Errorf("query verifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Verification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	v, err := repository.QueryOne(ctx, r.db, q, args, scanVerification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &v, nil
}

func (r *repo) insert(ctx context.Context, v *Verification) error {
	keywordsJSON, err := json.Marshal(v.Analysis.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	insertQ := `
		INSERT INTO consent_verifications(
			id, message_id, user_id, recipient_id, consent_level, confidence,
			keywords, message_context, requires_confirmation, suggested_action,
			explanation, verified, verified_at, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.ExecContext(ctx, insertQ,
		v.ID,
		v.MessageID,
		v.UserID,
		v.RecipientID,
		string(v.Analysis.Level),
		v.Analysis.Confidence,
		keywordsJSON,
		string(v.Analysis.Context),
		v.Analysis.RequiresConfirmation,
		string(v.Analysis.SuggestedAction),
		v.Analysis.Explanation,
		v.Verified,
		v.VerifiedAt,
		v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}

	return nil
}

func batchWorkers(n int) int {
	if n < 1 {
		return 1
	}
	return min(n, maxBatchWorkers)
}
