package domain

import "strings"

// DefaultSearchTerm replaces blank search input.
const DefaultSearchTerm = "Wallpaper"

type Query struct {
	Term     string
	Category Category
}

// NormalizeTerm trims the term, falling back to DefaultSearchTerm.
func NormalizeTerm(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return DefaultSearchTerm
	}
	return term
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// ItemKey identifies a feed entry. The same photo fetched under two
// categories yields two distinct keys.
type ItemKey struct {
	PhotoID  int64
	Category Category
}

type FeedState struct {
	Query   Query
	Items   []Photo
	Page    int
	HasMore bool
	Loading bool
	Epoch   uint64
	Status  Status
}

// Clone returns a copy that does not share the Items backing array.
func (s FeedState) Clone() FeedState {
	out := s
	out.Items = append([]Photo(nil), s.Items...)
	return out
}

type Selection struct {
	Photo *Photo
	Open  bool
}
