package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/mizutamari/keepsake/pkg/model"
)

// Memory implements Repository in process memory. Used by tests and as
// a fallback when no store path is available.
type Memory struct {
	mu sync.RWMutex
	kv map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{
		kv: make(map[string][]byte),
	}
}

// Seed writes a raw value under a page key, bypassing encoding. Test
// helper for exercising read-time tolerance of older record shapes.
func (r *Memory) Seed(id model.PageID, raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kv[pagePrefix+string(id)] = raw
}

func (r *Memory) PutPage(ctx context.Context, page *model.Page) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return goerr.Wrap(err, "failed to encode page")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.kv[pagePrefix+string(page.ID)] = raw
	return nil
}

func (r *Memory) GetPage(ctx context.Context, id model.PageID) (*model.Page, error) {
	r.mu.RLock()
	raw, ok := r.kv[pagePrefix+string(id)]
	r.mu.RUnlock()

	if !ok {
		return nil, goerr.Wrap(model.ErrPageNotFound, "no such page", goerr.V("page_id", id))
	}
	return model.DecodeTolerant(raw)
}

func (r *Memory) ListPages(ctx context.Context) ([]*model.Page, error) {
	r.mu.RLock()
	var pages []*model.Page
	for key, raw := range r.kv {
		if !strings.HasPrefix(key, pagePrefix) {
			continue
		}
		page, err := model.DecodeTolerant(raw)
		if err != nil {
			continue
		}
		pages = append(pages, page)
	}
	r.mu.RUnlock()

	sortPagesByCreatedAt(pages)
	return pages, nil
}

func (r *Memory) DeletePage(ctx context.Context, id model.PageID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kv, pagePrefix+string(id))
	return nil
}

func (r *Memory) PutDraft(ctx context.Context, page *model.Page) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return goerr.Wrap(err, "failed to encode draft")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.kv[draftKey] = raw
	return nil
}

func (r *Memory) GetDraft(ctx context.Context) (*model.Page, error) {
	r.mu.RLock()
	raw, ok := r.kv[draftKey]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return model.DecodeTolerant(raw)
}

func (r *Memory) DeleteDraft(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.kv, draftKey)
	return nil
}
