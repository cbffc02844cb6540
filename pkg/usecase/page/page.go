package page

import (
	"github.com/mizutamari/keepsake/pkg/repository"
)

// UseCase provides page lifecycle operations
type UseCase struct {
	repo repository.Repository
}

// New creates a new page UseCase instance
func New(repo repository.Repository) *UseCase {
	return &UseCase{
		repo: repo,
	}
}
