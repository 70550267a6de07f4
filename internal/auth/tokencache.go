package auth

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const defaultCacheFolder = "cache"

// TokenCache keeps a single bearer token in <Folder>/<Key>.
// The file holds the raw token bytes and nothing else.
type TokenCache struct {
	Folder string
	Key    string
}

func NewTokenCache(folder, key string) *TokenCache {
	if folder == "" {
		folder = defaultCacheFolder
	}

	return &TokenCache{
		Folder: folder,
		Key:    key,
	}
}

func (c *TokenCache) Path() string {
	return filepath.Join(c.Folder, c.Key)
}

// Load returns the cached token, or an empty string when nothing is cached.
func (c *TokenCache) Load() (string, error) {
	data, err := os.ReadFile(c.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, "could not read token cache %s", c.Path())
	}

	return string(data), nil
}

// Save overwrites the cache file with token, creating the folder if needed.
func (c *TokenCache) Save(token string) error {
	if err := os.MkdirAll(c.Folder, os.ModePerm); err != nil {
		return errors.Wrapf(err, "could not create cache folder %s", c.Folder)
	}

	if err := os.WriteFile(c.Path(), []byte(token), 0o600); err != nil {
		return errors.Wrapf(err, "could not write token cache %s", c.Path())
	}

	return nil
}
