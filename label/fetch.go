package label

import (
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/disintegration/imaging"
)

// DefaultFetchTimeout bounds how long one photo download may take. A
// stuck CDN must never stall a whole print run.
const DefaultFetchTimeout = 10 * time.Second

// Fetcher downloads remote images and caches the outcome per URL,
// successes and failures alike, so a URL shared by many records costs
// one request.
type Fetcher struct {
	client *http.Client

	mu     sync.Mutex
	images map[string]image.Image
	errs   map[string]error
}

// NewFetcher returns a Fetcher whose requests give up after timeout.
// A non-positive timeout falls back to DefaultFetchTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		images: map[string]image.Image{},
		errs:   map[string]error{},
	}
}

// Fetch returns the decoded image behind url, downloading it on first
// use. Concurrent first uses of one URL may download twice; the later
// result wins, which is harmless for identical content.
func (f *Fetcher) Fetch(url string) (image.Image, error) {
	f.mu.Lock()
	if img, ok := f.images[url]; ok {
		f.mu.Unlock()
		return img, nil
	}
	if err, ok := f.errs[url]; ok {
		f.mu.Unlock()
		return nil, err
	}
	f.mu.Unlock()

	img, err := f.download(url)

	f.mu.Lock()
	if err != nil {
		f.errs[url] = err
	} else {
		f.images[url] = img
	}
	f.mu.Unlock()
	return img, err
}

func (f *Fetcher) download(url string) (image.Image, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}
