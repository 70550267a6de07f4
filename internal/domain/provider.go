package domain

import "context"

// Plugin is the contract the host dispatches against for a single site.
type Plugin interface {
	String() string
	ValidateInput() error
	Authenticate(context.Context) error
	GetBookInfos(context.Context) BookInfos
	PageURL(ctx context.Context, page int) string

	// ForChapter returns a plugin for another chapter of the same series,
	// sharing the authenticated session.
	ForChapter(number float64) Plugin
}

type ReadDirection int

const (
	LeftToRight ReadDirection = iota
	RightToLeft
)

func (d ReadDirection) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// BookInfos describes one chapter as the host consumes it.
type BookInfos struct {
	Title         string
	Slug          string
	Pages         int
	Authors       string
	Volume        string
	Chapter       string
	ChapterTitle  string
	Description   string
	ReadDirection ReadDirection
	PageURLs      []string

	// SeriesChapters lists every chapter number of the series, ascending.
	SeriesChapters []float64
	CustomFields   map[string]any
}

// Empty reports whether b is the "nothing to show" result.
func (b BookInfos) Empty() bool {
	return b.Title == "" && b.Pages == 0
}
