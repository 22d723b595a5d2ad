package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/example/annotateshot/internal/storage"
)

// maxFetchSize bounds the body read from a remote image.
const maxFetchSize = 32 << 20

// Cache is the storage used for remote images.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	TrySet(ctx context.Context, key, value string) bool
}

// Fetcher loads remote images, keeping a data URL copy of each under
// storage.CachedImageKey(url) so repeated loads skip the network.
type Fetcher struct {
	Client *http.Client
	Cache  Cache
}

// NewFetcher returns a fetcher with a bounded HTTP timeout.
func NewFetcher(cache Cache) *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: 30 * time.Second}, Cache: cache}
}

// Fetch returns the image at url, from the cache when possible. The second
// result reports whether the cache was used.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, bool, error) {
	key := storage.CachedImageKey(url)
	if f.Cache != nil {
		cached, err := f.Cache.Get(ctx, key)
		switch {
		case err == nil:
			img, derr := DecodeDataURL(cached)
			if derr == nil {
				return img, true, nil
			}
			log.Printf("cache %s: %v", url, derr)
		case !errors.Is(err, storage.ErrNotFound):
			log.Printf("cache %s: %v", url, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchSize))
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", url, err)
	}
	dataURL, err := ToDataURL(data)
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", url, err)
	}
	img, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, false, err
	}
	if f.Cache != nil {
		f.Cache.TrySet(ctx, key, dataURL)
	}
	return img, false, nil
}
