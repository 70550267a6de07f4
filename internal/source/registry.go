package source

import (
	"fmt"
	"time"

	"mangasio/internal/auth"
	"mangasio/internal/domain"

	"github.com/rs/zerolog"
)

// Options carries the host settings every plugin receives.
type Options struct {
	CacheFolder      string
	Credentials      auth.CredentialSource
	LoginAttempts    int
	MetadataCacheTTL time.Duration

	// APIURL overrides the backend base URL.
	APIURL string

	Log zerolog.Logger
}

type Factory struct {
	Name  string
	Match func(url string) bool
	New   func(url string, opts Options) domain.Plugin
}

var registry []Factory

// Register adds a plugin factory. It's called at startup.
func Register(f Factory) {
	for _, existing := range registry {
		if existing.Name == f.Name {
			panic(fmt.Sprintf("source %q is already registered", f.Name))
		}
	}
	registry = append(registry, f)
}

// ForURL returns a plugin for the first registered source claiming url.
func ForURL(url string, opts Options) (domain.Plugin, error) {
	for _, f := range registry {
		if f.Match(url) {
			return f.New(url, opts), nil
		}
	}

	return nil, fmt.Errorf("no source handles url: %s", url)
}

// Names lists the registered sources.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, f := range registry {
		names = append(names, f.Name)
	}
	return names
}

func init() {
	Register(Factory{
		Name:  mangasioName,
		Match: IsMangasIOURL,
		New: func(url string, opts Options) domain.Plugin {
			return NewMangasIO(url, opts)
		},
	})
}
