package page

import (
	"context"
	"time"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

// SaveDraft snapshots the in-progress page under the single draft key,
// overwriting any previous snapshot (last write wins).
func (uc *UseCase) SaveDraft(ctx context.Context, draft *model.Page) error {
	return uc.repo.PutDraft(ctx, draft)
}

// LoadDraft returns the current draft, or nil when none exists
func (uc *UseCase) LoadDraft(ctx context.Context) (*model.Page, error) {
	return uc.repo.GetDraft(ctx)
}

// ClearDraft removes the draft snapshot
func (uc *UseCase) ClearDraft(ctx context.Context) error {
	return uc.repo.DeleteDraft(ctx)
}

// AutoSave snapshots the draft returned by source on a fixed interval
// until ctx is cancelled. A nil source result skips the tick. Write
// failures are logged and do not stop the loop.
func (uc *UseCase) AutoSave(ctx context.Context, interval time.Duration, source func() *model.Page) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			draft := source()
			if draft == nil {
				continue
			}
			if err := uc.repo.PutDraft(ctx, draft); err != nil {
				logging.From(ctx).Warn("draft auto-save failed", "error", err)
			}
		}
	}
}
