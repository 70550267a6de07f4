package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mangasio/internal/auth"
	"mangasio/internal/domain"
	"mangasio/internal/download"
	"mangasio/internal/parse"
	"mangasio/internal/sanitize"
	"mangasio/internal/source"
	"mangasio/internal/templater"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// staticLoginAttempts bounds the login loop when credentials come from config
// and nobody can be prompted.
const staticLoginAttempts = 3

var errAlreadyDownloaded = errors.New("chapter has already been downloaded")

func sourceOptions(cfg *domain.Config, log zerolog.Logger) source.Options {
	opts := source.Options{
		CacheFolder:      cfg.CacheFolder,
		LoginAttempts:    cfg.LoginAttempts,
		MetadataCacheTTL: time.Duration(cfg.MetadataCacheTTL) * time.Second,
		Log:              log,
	}

	if cfg.Email != "" {
		opts.Credentials = auth.StaticCredentials{Email: cfg.Email, Password: cfg.Password}
		if opts.LoginAttempts == 0 {
			opts.LoginAttempts = staticLoginAttempts
		}
	}

	return opts
}

func newPlugin(url string, cfg *domain.Config, log zerolog.Logger) (domain.Plugin, error) {
	p, err := source.ForURL(url, sourceOptions(cfg, log))
	if err != nil {
		return nil, err
	}

	if err := p.ValidateInput(); err != nil {
		return nil, errors.Wrap(err, "invalid input")
	}

	return p, nil
}

type chapterSelection struct {
	chapters string
	first    bool
	latest   bool
}

// selectChapters picks the chapter numbers to download. Without a selection
// only the chapter of the given infos is returned.
func selectChapters(infos domain.BookInfos, sel chapterSelection) ([]float64, error) {
	current, err := strconv.ParseFloat(infos.Chapter, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid chapter number %q", infos.Chapter)
	}

	available := infos.SeriesChapters
	if len(available) == 0 {
		available = []float64{current}
	}

	firstNr, latestNr, err := parse.GetMinAndMax(available)
	if err != nil {
		return nil, err
	}

	switch {
	case sel.first:
		return []float64{firstNr}, nil
	case sel.latest:
		return []float64{latestNr}, nil
	case sel.chapters != "":
		return parse.ChapterSelection(sel.chapters, available)
	default:
		return []float64{current}, nil
	}
}

// chapterPath returns the templated chapter name and the archive path it is
// written to.
func chapterPath(cfg *domain.Config, infos domain.BookInfos) (string, string) {
	name := templater.New(infos).ExecTemplate(cfg.NamingTemplate)

	format := cfg.OutputFormat
	if format != download.FormatPDF {
		format = download.FormatCBZ
	}

	contentPath := filepath.Join(
		cfg.DownloadLocation,
		sanitize.Filename(infos.Title),
		fmt.Sprintf("%s.%s", sanitize.Filename(name), format),
	)

	return name, contentPath
}

// downloadChapter writes one chapter to the download location unless it is
// already there.
func downloadChapter(ctx context.Context, cfg *domain.Config, p domain.Plugin, infos domain.BookInfos, log zerolog.Logger) error {
	name, contentPath := chapterPath(cfg, infos)
	log = log.With().Str("chapter", name).Logger()

	if _, err := os.Stat(contentPath); err == nil {
		return errAlreadyDownloaded
	}

	number, _ := strconv.ParseFloat(infos.Chapter, 64)

	log.Info().Int("pages", len(infos.PageURLs)).Msg("downloading")

	result, err := download.Chapter(ctx, p, infos, contentPath, download.Options{
		Format:      cfg.OutputFormat,
		Concurrency: cfg.PageConcurrency,
		SourceURL:   source.MangasIOURL(infos.Slug, number),
		Log:         log,
	})
	if len(result.Missing) > 0 {
		log.Warn().Ints("pages", result.Missing).Msg("pages could not be downloaded")
	}
	if err != nil {
		return err
	}

	log.Info().Int("downloaded", result.Downloaded).Str("path", contentPath).Msg("finished downloading")
	return nil
}

func formatChapter(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
