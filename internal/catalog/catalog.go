// Package catalog defines the external metadata catalog contract consumed
// by the import pipeline.
package catalog

import "context"

// MediaType identifies the kind of media a candidate or search refers to.
type MediaType string

const (
	MediaTV    MediaType = "tv"
	MediaMovie MediaType = "movie"
)

// Candidate is one ranked search result from the catalog.
type Candidate struct {
	ID          int64
	Title       string
	MediaType   MediaType
	Year        int // 0 if unknown
	PosterURL   string
	BackdropURL string
	Overview    string
	Rating      float64
	VoteCount   int
	Popularity  float64
}

// Details is the rich metadata for a single catalog entry.
type Details struct {
	Candidate
	Genres       []string
	Networks     []string
	Status       string
	Runtime      int // minutes, movies only
	SeasonCount  int // tv only
	EpisodeCount int // tv only
}

//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks github.com/shelfarr/shelfarr/internal/catalog Searcher

// Searcher is the catalog lookup collaborator. Implementations must not
// return an error for "not found": Search returns an empty slice and
// Details returns nil.
type Searcher interface {
	Search(ctx context.Context, query string, kind MediaType) ([]Candidate, error)
	Details(ctx context.Context, id int64, kind MediaType) (*Details, error)
}
