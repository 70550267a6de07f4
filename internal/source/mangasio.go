package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"mangasio/internal/auth"
	"mangasio/internal/domain"
	"mangasio/internal/sharedhttp"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

const (
	mangasioName     = "Mangas.io"
	mangasioOrigin   = "https://www.mangas.io"
	mangasioAPIURL   = "https://api.mangas.io"
	MangasIOCacheKey = "TOKEN_MANGAS_IO"
	mangasioQuality  = "HD"

	// PagesMapField is the BookInfos custom field holding the page table.
	PagesMapField = "pages_map"
)

var mangasioURLPattern = regexp.MustCompile(`https://www\.mangas\.io/lire/([^/]+)/([\d\.]+)`)

// IsMangasIOURL reports whether url is a mangas.io reader page.
func IsMangasIOURL(url string) bool {
	return mangasioURLPattern.MatchString(url)
}

// MangasIOURL builds the reader page url for a chapter.
func MangasIOURL(slug string, chapter float64) string {
	return fmt.Sprintf("%s/lire/%s/%s", mangasioOrigin, slug, formatNumber(chapter))
}

type MangasIO struct {
	URL string

	opts     Options
	apiURL   string
	header   http.Header
	api      *sharedhttp.JSONClient
	gate     *semaphore.Weighted
	metadata *cache.Cache
	log      zerolog.Logger

	parseOnce     sync.Once
	parseErr      error
	slug          string
	chapterNumber float64
}

func NewMangasIO(url string, opts Options) *MangasIO {
	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = mangasioAPIURL
	}

	header := http.Header{}
	header.Set("Accept", "*/*")
	header.Set("Accept-Language", "fr,fr-FR;q=0.8,en-US;q=0.5,en;q=0.3")
	header.Set("Content-Type", "application/json; charset=utf-8")
	header.Set("Origin", mangasioOrigin)
	header.Set("DNT", "1")
	header.Set("Sec-Fetch-Dest", "empty")
	header.Set("Sec-Fetch-Mode", "cors")
	header.Set("Sec-Fetch-Site", "same-site")
	header.Set("Pragma", "no-cache")
	header.Set("Cache-Control", "no-cache")
	header.Set("User-Agent", "mangasio")

	m := &MangasIO{
		URL:    url,
		opts:   opts,
		apiURL: strings.TrimRight(apiURL, "/"),
		header: header,
		api:    sharedhttp.NewJSONClient(),
		gate:   semaphore.NewWeighted(1),
		log:    opts.Log.With().Str("source", mangasioName).Logger(),
	}

	if opts.MetadataCacheTTL > 0 {
		m.metadata = cache.New(opts.MetadataCacheTTL, 2*opts.MetadataCacheTTL)
	}

	return m
}

func (m *MangasIO) String() string {
	return mangasioName
}

func (m *MangasIO) ValidateInput() error {
	m.parseURL()
	return m.parseErr
}

// Identity returns the parsed series slug and chapter number.
func (m *MangasIO) Identity() (string, float64) {
	m.parseURL()
	return m.slug, m.chapterNumber
}

func (m *MangasIO) parseURL() {
	m.parseOnce.Do(func() {
		matches := mangasioURLPattern.FindStringSubmatch(m.URL)
		if matches == nil {
			m.parseErr = fmt.Errorf("not a mangas.io reader url: %s", m.URL)
			return
		}

		number, err := strconv.ParseFloat(matches[2], 64)
		if err != nil {
			m.parseErr = errors.Wrapf(err, "invalid chapter number %q", matches[2])
			return
		}

		m.slug = matches[1]
		m.chapterNumber = number
	})
}

// Authenticate reuses the cached token when the backend still accepts it and
// logs in otherwise. It must complete before any metadata or page call.
func (m *MangasIO) Authenticate(ctx context.Context) error {
	credentials := m.opts.Credentials
	if credentials == nil {
		credentials = auth.NewTerminalPrompter()
	}

	session := &auth.Session{
		Store:       auth.NewTokenCache(m.opts.CacheFolder, MangasIOCacheKey),
		Prober:      auth.NewValidator(m.apiURL+"/auth/token_validation", m.header, m.log),
		Issuer:      auth.NewLoginClient(m.apiURL+"/auth/login", m.header, credentials, m.log),
		Header:      m.header,
		MaxAttempts: m.opts.LoginAttempts,
		Log:         m.log,
	}

	return session.Authenticate(ctx)
}

// ForChapter shares the session headers, page gate and metadata cache.
func (m *MangasIO) ForChapter(number float64) domain.Plugin {
	slug, _ := m.Identity()

	return &MangasIO{
		URL:      MangasIOURL(slug, number),
		opts:     m.opts,
		apiURL:   m.apiURL,
		header:   m.header.Clone(),
		api:      m.api,
		gate:     m.gate,
		metadata: m.metadata,
		log:      m.log,
	}
}

// GetBookInfos returns the chapter metadata, or an empty BookInfos when the
// backend has nothing usable for this url.
func (m *MangasIO) GetBookInfos(ctx context.Context) domain.BookInfos {
	if err := m.ValidateInput(); err != nil {
		m.log.Error().Err(err).Msg("invalid input")
		return domain.BookInfos{}
	}

	key := fmt.Sprintf("%s/%s", m.slug, formatNumber(m.chapterNumber))
	if m.metadata != nil {
		if cached, ok := m.metadata.Get(key); ok {
			return cached.(domain.BookInfos)
		}
	}

	infos := m.fetchBookInfos(ctx)

	if m.metadata != nil && !infos.Empty() {
		m.metadata.SetDefault(key, infos)
	}

	return infos
}

func (m *MangasIO) fetchBookInfos(ctx context.Context) domain.BookInfos {
	req := graphqlRequest{
		OperationName: "getReadingChapter",
		Variables: map[string]any{
			"chapterNb": m.chapterNumber,
			"slug":      m.slug,
			"quality":   mangasioQuality,
		},
		Query: readingChapterQuery,
	}

	log := m.log.With().Str("slug", m.slug).Float64("chapter", m.chapterNumber).Logger()

	var resp mangasioReadingChapter
	if err := m.api.Post(ctx, m.apiURL+"/api", m.header, req, &resp); err != nil {
		log.Error().Err(err).Msg("error getting chapter")
		return domain.BookInfos{}
	}

	if resp.Data == nil || resp.Data.Manga == nil || resp.Data.Manga.Chapter == nil {
		log.Warn().Strs("errors", graphqlMessages(resp.Errors)).Msg("no chapter in response")
		return domain.BookInfos{}
	}

	infos := fillBookInfos(resp.Data.Manga)
	infos.Slug = m.slug

	return infos
}

func fillBookInfos(manga *mangasioManga) domain.BookInfos {
	chapter := manga.Chapter

	authors := make([]string, 0, len(manga.Authors))
	for _, author := range manga.Authors {
		authors = append(authors, author.Name)
	}

	volume, description := findVolume(manga.Volumes, chapter.ID)

	pages := make(map[int]string, len(chapter.Pages))
	for _, page := range chapter.Pages {
		pages[page.Number] = page.ID
	}

	direction := domain.LeftToRight
	if manga.Direction == "rtl" {
		direction = domain.RightToLeft
	}

	return domain.BookInfos{
		Title:          manga.Title,
		Pages:          chapter.PageCount,
		Authors:        strings.Join(authors, ", "),
		Volume:         volume,
		Chapter:        formatNumber(chapter.Number),
		ChapterTitle:   chapter.Title,
		Description:    description,
		ReadDirection:  direction,
		PageURLs:       make([]string, len(pages)),
		SeriesChapters: seriesChapters(manga.Volumes),
		CustomFields: map[string]any{
			PagesMapField: pages,
		},
	}
}

// findVolume returns the number and description of the first volume listing
// chapterID, or empty strings.
func findVolume(volumes []mangasioVolume, chapterID string) (string, string) {
	for _, v := range volumes {
		for _, c := range v.Chapters {
			if c.ID == chapterID {
				return formatNumber(v.Number), v.Description
			}
		}
	}

	return "", ""
}

func seriesChapters(volumes []mangasioVolume) []float64 {
	var numbers []float64
	for _, v := range volumes {
		for _, c := range v.Chapters {
			numbers = append(numbers, c.Number)
		}
	}

	slices.Sort(numbers)
	return slices.Compact(numbers)
}

// PageURL resolves the image url of the zero-based page. Only one call runs
// at a time; the others queue in arrival order. An empty string means no url
// is available for that page.
func (m *MangasIO) PageURL(ctx context.Context, page int) string {
	if err := m.gate.Acquire(ctx, 1); err != nil {
		return ""
	}
	defer m.gate.Release(1)

	log := m.log.With().Int("page", page+1).Logger()

	infos := m.GetBookInfos(ctx)

	pages, _ := infos.CustomFields[PagesMapField].(map[int]string)
	id, ok := pages[page+1]
	if !ok || id == "" {
		log.Debug().Msg("page not in chapter")
		return ""
	}

	req := graphqlRequest{
		OperationName: "getPageById",
		Variables: map[string]any{
			"id":      id,
			"quality": mangasioQuality,
		},
		Query: pageByIDQuery,
	}

	var resp mangasioPage
	if err := m.api.Post(ctx, m.apiURL+"/api", m.header, req, &resp); err != nil {
		log.Error().Err(err).Msg("error getting page info")
		return ""
	}

	if resp.Data == nil || resp.Data.Page == nil || resp.Data.Page.Image == nil || resp.Data.Page.Image.URL == "" {
		log.Error().Strs("errors", graphqlMessages(resp.Errors)).Msg("no image url in response")
		return ""
	}

	return resp.Data.Page.Image.URL
}

func graphqlMessages(errs []graphqlError) []string {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return messages
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
