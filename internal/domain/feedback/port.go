package feedback

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, run *AnalysisRun) error
	// Latest returns runs most-recent-first, truncated to limit.
	Latest(ctx context.Context, limit int) ([]*AnalysisRun, error)
}

// ArchiveStore port (interface untuk penyimpanan raw input)
type ArchiveStore interface {
	Archive(ctx context.Context, id RunID, text string) (string, error)
}
