package page

import (
	"context"

	"github.com/mizutamari/keepsake/pkg/model"
)

// List returns all saved pages, newest first
func (uc *UseCase) List(ctx context.Context) ([]*model.Page, error) {
	return uc.repo.ListPages(ctx)
}

// Show retrieves one saved page by ID
func (uc *UseCase) Show(ctx context.Context, id model.PageID) (*model.Page, error) {
	return uc.repo.GetPage(ctx, id)
}

// Delete removes one saved page. Other pages are unaffected.
func (uc *UseCase) Delete(ctx context.Context, id model.PageID) error {
	return uc.repo.DeletePage(ctx, id)
}
