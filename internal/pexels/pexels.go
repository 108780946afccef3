package pexels

import (
	"context"

	"github.com/orgball2608/wallify-bot/internal/domain"
)

// DefaultPerPage is the page size the feed requests.
const DefaultPerPage = 30

type SearchParams struct {
	Query       string
	Orientation string
	PerPage     int
	Page        int
}

//go:generate go run go.uber.org/mock/mockgen -source=pexels.go -destination=mocks/mock.go
type Client interface {
	// Search runs one upstream search request. Errors carry a code from
	// pkg/errors describing the failure class.
	Search(ctx context.Context, params SearchParams) (*domain.ResultPage, error)
}
