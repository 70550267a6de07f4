package cmd

import (
	"path/filepath"
	"testing"

	"mangasio/internal/auth"
	"mangasio/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectChapters(t *testing.T) {
	infos := domain.BookInfos{Chapter: "3", SeriesChapters: []float64{1, 2, 3, 3.5, 4}}

	tests := []struct {
		name string
		sel  chapterSelection
		want []float64
	}{
		{name: "current", sel: chapterSelection{}, want: []float64{3}},
		{name: "first", sel: chapterSelection{first: true}, want: []float64{1}},
		{name: "latest", sel: chapterSelection{latest: true}, want: []float64{4}},
		{name: "range", sel: chapterSelection{chapters: "2-3.5,9"}, want: []float64{2, 3, 3.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectChapters(infos, tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectChapters_WithoutSeries(t *testing.T) {
	got, err := selectChapters(domain.BookInfos{Chapter: "12.5"}, chapterSelection{latest: true})
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5}, got)

	_, err = selectChapters(domain.BookInfos{Chapter: "abc"}, chapterSelection{})
	assert.Error(t, err)
}

func TestChapterPath(t *testing.T) {
	cfg := &domain.Config{
		DownloadLocation: "/data/manga",
		NamingTemplate:   "{manga:<.>} Ch. {num:3}{title: - <.>}",
		OutputFormat:     "pdf",
	}
	infos := domain.BookInfos{Title: "Demo: Manga", Chapter: "3", ChapterTitle: "Three?"}

	name, contentPath := chapterPath(cfg, infos)
	assert.Equal(t, "Demo: Manga Ch. 003 - Three?", name)
	assert.Equal(t, filepath.Join("/data/manga", "Demo Manga", "Demo Manga Ch. 003 - Three.pdf"), contentPath)

	cfg.OutputFormat = ""
	_, contentPath = chapterPath(cfg, infos)
	assert.Equal(t, ".cbz", filepath.Ext(contentPath))
}

func TestSourceOptions(t *testing.T) {
	opts := sourceOptions(&domain.Config{CacheFolder: "cache", MetadataCacheTTL: 30}, zerolog.Nop())
	assert.Nil(t, opts.Credentials)
	assert.Zero(t, opts.LoginAttempts)
	assert.Equal(t, "30s", opts.MetadataCacheTTL.String())

	opts = sourceOptions(&domain.Config{Email: "a@b.c", Password: "pw"}, zerolog.Nop())
	assert.Equal(t, auth.StaticCredentials{Email: "a@b.c", Password: "pw"}, opts.Credentials)
	assert.Equal(t, staticLoginAttempts, opts.LoginAttempts)

	opts = sourceOptions(&domain.Config{Email: "a@b.c", LoginAttempts: 1}, zerolog.Nop())
	assert.Equal(t, 1, opts.LoginAttempts)
}
