package page

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

// Save promotes a draft to a saved page: a fresh ID and creation
// timestamp are assigned, the page is written under its own key, and
// the draft slot is cleared. The input is not modified; on failure the
// caller still holds the original record for retry.
func (uc *UseCase) Save(ctx context.Context, draft *model.Page) (*model.Page, error) {
	saved := *draft
	saved.ID = model.NewPageID()
	saved.CreatedAt = time.Now().UTC()

	if err := uc.repo.PutPage(ctx, &saved); err != nil {
		return nil, goerr.Wrap(err, "failed to save page")
	}

	// Draft cleanup is best effort; the page itself is already safe.
	if err := uc.repo.DeleteDraft(ctx); err != nil {
		logging.From(ctx).Warn("failed to clear draft after save", "error", err)
	}

	return &saved, nil
}
