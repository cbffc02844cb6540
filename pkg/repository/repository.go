package repository

import (
	"context"

	"github.com/mizutamari/keepsake/pkg/model"
)

// Key layout of the flat key-value namespace. The draft lives under a
// single overwritable key; saved pages live under a per-page key.
const (
	draftKey   = "draft"
	pagePrefix = "page/"
)

// Repository defines the interface for page persistence
type Repository interface {
	// PutPage saves a finished page under its ID
	PutPage(ctx context.Context, page *model.Page) error

	// GetPage retrieves a page by ID. Returns model.ErrPageNotFound
	// when no page exists under the ID.
	GetPage(ctx context.Context, id model.PageID) (*model.Page, error)

	// ListPages returns all saved pages, newest first. Entries that
	// can no longer be decoded are skipped.
	ListPages(ctx context.Context) ([]*model.Page, error)

	// DeletePage removes a page. Deleting an absent page is not an error.
	DeletePage(ctx context.Context, id model.PageID) error

	// PutDraft overwrites the single draft slot
	PutDraft(ctx context.Context, page *model.Page) error

	// GetDraft returns the current draft, or (nil, nil) when absent
	GetDraft(ctx context.Context) (*model.Page, error)

	// DeleteDraft clears the draft slot
	DeleteDraft(ctx context.Context) error
}
