package download

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"mangasio/internal/domain"
	"mangasio/internal/files"
	"mangasio/internal/sharedhttp"

	"github.com/avast/retry-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	FormatCBZ = "cbz"
	FormatPDF = "pdf"
)

var ErrNoPages = errors.New("no page could be downloaded")

type Options struct {
	Format      string
	Concurrency int
	SourceURL   string
	Retry       []retry.Option
	Log         zerolog.Logger
}

type Result struct {
	Downloaded int
	Missing    []int
}

// Chapter resolves every page url through the plugin, downloads the images and
// packs them into contentPath. Pages without a url are skipped and reported.
func Chapter(ctx context.Context, plugin domain.Plugin, infos domain.BookInfos, contentPath string, opts Options) (Result, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Retry == nil {
		opts.Retry = sharedhttp.DefaultRetry
	}

	temp, err := os.MkdirTemp("", "mangasio-*")
	if err != nil {
		return Result{}, err
	}
	defer os.RemoveAll(temp)

	client := &http.Client{
		Timeout:   60 * time.Second,
		Transport: sharedhttp.Transport,
	}

	var (
		mu     sync.Mutex
		result Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := range infos.PageURLs {
		g.Go(func() error {
			log := opts.Log.With().Int("page", i+1).Logger()

			ok := false
			defer func() {
				mu.Lock()
				defer mu.Unlock()
				if ok {
					result.Downloaded++
				} else {
					result.Missing = append(result.Missing, i+1)
				}
			}()

			url := plugin.PageURL(gctx, i)
			if url == "" {
				log.Warn().Msg("no url for page, skipping")
				return nil
			}

			filenameNoExt := filepath.Join(temp, fmt.Sprintf("%03d", i+1))
			if err := singleFile(gctx, client, url, filenameNoExt, opts.Retry); err != nil {
				log.Error().Err(err).Msg("error downloading page")
				return nil
			}

			ok = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	slices.Sort(result.Missing)

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if result.Downloaded == 0 {
		return result, ErrNoPages
	}

	info := files.NewComicInfo(infos, opts.SourceURL)

	switch opts.Format {
	case FormatPDF:
		err = files.CreatePDF(temp, contentPath, info)
	default:
		err = files.CreateCbzArchive(temp, contentPath, info)
	}
	if err != nil {
		return result, errors.Wrapf(err, "could not write %s", contentPath)
	}

	return result, nil
}

// singleFile downloads a single file
func singleFile(ctx context.Context, client *http.Client, url, filenameNoExt string, opts []retry.Option) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "mangasio")

	opts = append([]retry.Option{retry.Context(ctx)}, opts...)

	return retry.Do(func() error {
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get image: %w", err)
		}
		defer resp.Body.Close()

		if err := sharedhttp.CheckStatusCode(resp.StatusCode); err != nil {
			return err
		}

		filename, err := appendImageExtension(resp, filenameNoExt)
		if err != nil {
			return retry.Unrecoverable(err)
		}

		out, err := os.Create(filename)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		defer out.Close()

		readBuf := bufio.NewReader(resp.Body)
		writeBuf := bufio.NewWriter(out)

		if _, err := io.Copy(writeBuf, readBuf); err != nil {
			return err
		}

		return writeBuf.Flush()
	}, opts...)
}

func appendImageExtension(resp *http.Response, filename string) (string, error) {
	contentType := resp.Header.Get("Content-Type")

	switch contentType {
	case "image/jpeg", "image/jpg":
		return filename + ".jpg", nil
	case "image/png":
		return filename + ".png", nil
	case "image/gif":
		return filename + ".gif", nil
	case "image/webp":
		return filename + ".webp", nil
	default:
		return filename, fmt.Errorf("unsupported content type: %s", contentType)
	}
}
