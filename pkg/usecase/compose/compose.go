package compose

import (
	"time"

	"github.com/mizutamari/keepsake/pkg/adapter"
)

// UseCase turns unstructured interview output and manual drafts into
// fully shaped pages. All operations are single stateless model calls.
type UseCase struct {
	gemini  adapter.Gemini
	timeout time.Duration
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithTimeout bounds each model call. A hung call fails instead of
// blocking the flow forever.
func WithTimeout(d time.Duration) Option {
	return func(uc *UseCase) {
		uc.timeout = d
	}
}

// New creates a compose UseCase. gemini may be nil, in which case
// extraction fails with model.ErrNotConfigured and the best-effort
// operations pass their input through unchanged.
func New(gemini adapter.Gemini, opts ...Option) *UseCase {
	uc := &UseCase{
		gemini:  gemini,
		timeout: 90 * time.Second,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Configured reports whether an AI client is available
func (uc *UseCase) Configured() bool {
	return uc.gemini != nil
}
