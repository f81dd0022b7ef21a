package analyzer

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"betterfeedback/internal/application"
	domai "betterfeedback/internal/domain/ai"
	"betterfeedback/internal/domain/feedback"
)

// emptyInputMessage is surfaced when no analyzable text was submitted.
const emptyInputMessage = "empty input"

// Service implements the analyze use-case: adapter call, per-item
// validation, persistence. Safe for concurrent use.
type Service struct {
	AI      domai.Client
	Repo    feedback.Repository
	Archive feedback.ArchiveStore // optional, may be nil
	Clock   application.Clock
	Log     *zap.Logger
}

// Run analyzes raw feedback text and always resolves to an AnalyzeResponse,
// never a bare error.
//
// Failure semantics: an adapter failure is fatal to the request and nothing
// is persisted. A per-item validation failure only drops that item; the
// request continues. A storage failure after a successful AI call is logged
// loudly but the freshly computed items are still returned to the caller.
func (s *Service) Run(ctx context.Context, text string) feedback.AnalyzeResponse {
	if strings.TrimSpace(text) == "" {
		return feedback.ResponseFromError(emptyInputMessage)
	}

	raw, err := s.AI.Analyze(ctx, text)
	if err != nil {
		s.Log.Error("ai analyze failed", zap.Error(err))
		return feedback.ResponseFromError(adapterMessage(err))
	}

	items := make([]feedback.FeedbackItem, 0, len(raw))
	skipped := 0
	for i, el := range raw {
		item, vf := feedback.Validate(el)
		if vf != nil {
			skipped++
			s.Log.Warn("dropping invalid feedback item",
				zap.Int("index", i),
				zap.String("field", vf.Field),
				zap.String("reason", vf.Reason),
			)
			continue
		}
		items = append(items, item)
	}

	run := feedback.NewRun(feedback.RunID(uuid.New().String()), s.Clock.Now(), text, items)
	if err := s.Repo.Save(ctx, run); err != nil {
		// Data is correct but unsaved; the response still carries it.
		s.Log.Error("failed to persist analysis run",
			zap.String("run_id", string(run.ID)),
			zap.Int("item_count", run.ItemCount),
			zap.Error(err),
		)
	} else {
		s.Log.Info("persisted analysis run",
			zap.String("run_id", string(run.ID)),
			zap.Int("item_count", run.ItemCount),
		)
		s.archive(ctx, run)
	}

	return feedback.ResponseFromItems(items, skipped)
}

// History returns past runs, most recent first.
func (s *Service) History(ctx context.Context, limit int) ([]*feedback.AnalysisRun, error) {
	return s.Repo.Latest(ctx, limit)
}

// archive pushes the raw input to object storage when a store is configured.
// Best effort only.
func (s *Service) archive(ctx context.Context, run *feedback.AnalysisRun) {
	if s.Archive == nil {
		return
	}
	url, err := s.Archive.Archive(ctx, run.ID, run.InputText)
	if err != nil {
		s.Log.Warn("failed to archive raw input", zap.String("run_id", string(run.ID)), zap.Error(err))
		return
	}
	s.Log.Info("archived raw input", zap.String("run_id", string(run.ID)), zap.String("url", url))
}

func adapterMessage(err error) string {
	var svcErr *domai.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message()
	}
	return "AI provider error."
}
