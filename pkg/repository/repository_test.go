package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/repository"
)

func newPage(recipient string, createdAt time.Time) *model.Page {
	p := model.DefaultPage()
	p.ID = model.NewPageID()
	p.CreatedAt = createdAt
	p.Basics.RecipientName = recipient
	return p
}

// runRepositoryTests exercises the Repository contract against any
// implementation
func runRepositoryTests(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	t.Run("put and get page", func(t *testing.T) {
		page := newPage("Mei", time.Now().UTC())
		gt.NoError(t, repo.PutPage(ctx, page))

		got, err := repo.GetPage(ctx, page.ID)
		gt.NoError(t, err)
		gt.V(t, got.Basics.RecipientName).Equal("Mei")
		gt.V(t, got.ID).Equal(page.ID)
	})

	t.Run("get absent page", func(t *testing.T) {
		_, err := repo.GetPage(ctx, model.NewPageID())
		gt.Error(t, err)
		gt.True(t, errors.Is(err, model.ErrPageNotFound))
	})

	t.Run("list newest first", func(t *testing.T) {
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		older := newPage("Older", base)
		newer := newPage("Newer", base.Add(time.Hour))
		gt.NoError(t, repo.PutPage(ctx, older))
		gt.NoError(t, repo.PutPage(ctx, newer))

		pages, err := repo.ListPages(ctx)
		gt.NoError(t, err)
		gt.A(t, pages).Longer(1)

		var olderIdx, newerIdx int
		for i, p := range pages {
			switch p.ID {
			case older.ID:
				olderIdx = i
			case newer.ID:
				newerIdx = i
			}
		}
		gt.True(t, newerIdx < olderIdx)
	})

	t.Run("delete is independent", func(t *testing.T) {
		first := newPage("First", time.Now().UTC())
		second := newPage("Second", time.Now().UTC())
		gt.NoError(t, repo.PutPage(ctx, first))
		gt.NoError(t, repo.PutPage(ctx, second))

		gt.NoError(t, repo.DeletePage(ctx, first.ID))

		_, err := repo.GetPage(ctx, first.ID)
		gt.True(t, errors.Is(err, model.ErrPageNotFound))

		got, err := repo.GetPage(ctx, second.ID)
		gt.NoError(t, err)
		gt.V(t, got.Basics.RecipientName).Equal("Second")
	})

	t.Run("delete absent page is not an error", func(t *testing.T) {
		gt.NoError(t, repo.DeletePage(ctx, model.NewPageID()))
	})

	t.Run("draft lifecycle", func(t *testing.T) {
		got, err := repo.GetDraft(ctx)
		gt.NoError(t, err)
		gt.V(t, got).Nil()

		draft := model.DefaultPage()
		draft.Basics.RecipientName = "Draft Target"
		gt.NoError(t, repo.PutDraft(ctx, draft))

		got, err = repo.GetDraft(ctx)
		gt.NoError(t, err)
		gt.V(t, got.Basics.RecipientName).Equal("Draft Target")

		// Last write wins.
		draft.Basics.RecipientName = "New Target"
		gt.NoError(t, repo.PutDraft(ctx, draft))
		got, err = repo.GetDraft(ctx)
		gt.NoError(t, err)
		gt.V(t, got.Basics.RecipientName).Equal("New Target")

		gt.NoError(t, repo.DeleteDraft(ctx))
		got, err = repo.GetDraft(ctx)
		gt.NoError(t, err)
		gt.V(t, got).Nil()
	})
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTests(t, repository.NewMemory())
}

func TestSQLiteRepository(t *testing.T) {
	repo, err := repository.NewSQLite(filepath.Join(t.TempDir(), "keepsake.db"))
	gt.NoError(t, err)
	defer repo.Close()

	runRepositoryTests(t, repo)
}

func TestSQLiteReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keepsake.db")

	repo, err := repository.NewSQLite(path)
	gt.NoError(t, err)

	page := newPage("Persistent", time.Now().UTC())
	gt.NoError(t, repo.PutPage(ctx, page))
	gt.NoError(t, repo.Close())

	reopened, err := repository.NewSQLite(path)
	gt.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetPage(ctx, page.ID)
	gt.NoError(t, err)
	gt.V(t, got.Basics.RecipientName).Equal("Persistent")
}

func TestOldShapedRecordIsReadTolerant(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	id := model.NewPageID()
	repo.Seed(id, []byte(`{"id":"`+string(id)+`","basics":{"recipientName":"Old Friend"}}`))

	got, err := repo.GetPage(ctx, id)
	gt.NoError(t, err)
	gt.V(t, got.Basics.RecipientName).Equal("Old Friend")
	gt.V(t, got.Design.VisualStyle).Equal(model.StyleNeon)
	gt.A(t, got.Design.EmojiPreference).Length(3)
}

func TestListSkipsUndecodableEntries(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	good := newPage("Good", time.Now().UTC())
	gt.NoError(t, repo.PutPage(ctx, good))
	repo.Seed(model.NewPageID(), []byte(`{broken`))

	pages, err := repo.ListPages(ctx)
	gt.NoError(t, err)
	gt.A(t, pages).Length(1)
	gt.V(t, pages[0].ID).Equal(good.ID)
}
