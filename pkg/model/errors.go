package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotConfigured is returned when an AI-backed operation is
	// invoked without a configured AI client. Best-effort callers
	// degrade to pass-through instead of surfacing it.
	ErrNotConfigured = goerr.New("ai client is not configured")

	// ErrExtraction indicates the model returned text that could not
	// be reduced to a valid page record.
	ErrExtraction = goerr.New("failed to extract page data from model output")

	// ErrPageNotFound indicates no saved page exists under the given ID.
	ErrPageNotFound = goerr.New("page not found")
)
