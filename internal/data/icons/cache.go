// Package icons is the boss-icon image cache. Population is asynchronous and
// fire-and-forget; the renderer queries it synchronously and treats every
// state other than ready as "no icon".
package icons

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/raidsync/go-raid-sync/internal/util"
)

// fetchState tracks one URL's lifecycle
type fetchState int

const (
	stateLoading fetchState = iota
	stateReady
	stateFailed
)

const (
	fetchTimeout    = 15 * time.Second
	maxConcurrency  = 4
	maxIconBodySize = 1 << 20
)

type entry struct {
	state fetchState
	img   image.Image
}

// Cache holds decoded icon images keyed by URL
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry

	client *http.Client
	sem    chan struct{}
	wg     sync.WaitGroup
}

// NewCache creates an empty icon cache
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		client:  &http.Client{Timeout: fetchTimeout},
		sem:     make(chan struct{}, maxConcurrency),
	}
}

// Image returns the decoded image for a URL, or nil while it is loading,
// failed, or was never requested. Never blocks.
func (c *Cache) Image(url string) image.Image {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[url]; ok && e.state == stateReady {
		return e.img
	}
	return nil
}

// Prefetch starts background fetches for any URLs not already known.
// Duplicate and empty URLs are ignored.
func (c *Cache) Prefetch(urls []string) {
	for _, url := range urls {
		if url == "" {
			continue
		}

		c.mu.Lock()
		if _, ok := c.entries[url]; ok {
			c.mu.Unlock()
			continue
		}
		c.entries[url] = &entry{state: stateLoading}
		c.mu.Unlock()

		c.wg.Add(1)
		go c.fetch(url)
	}
}

// fetch downloads and decodes one icon. Failures are logged and the entry
// stays failed; rendering falls back to the no-icon layout.
func (c *Cache) fetch(url string) {
	defer c.wg.Done()
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	img, err := c.download(url)

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[url]
	if err != nil {
		util.LogWarnf("Icon fetch failed for %s: %v", url, err)
		e.state = stateFailed
		return
	}
	e.state = stateReady
	e.img = img
}

func (c *Cache) download(url string) (image.Image, error) {
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &httpStatusError{status: resp.StatusCode}
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxIconBodySize))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Close waits for in-flight fetches to finish
func (c *Cache) Close() {
	c.wg.Wait()
}

type httpStatusError struct {
	status int
}

func (e *httpStatusError) Error() string {
	return http.StatusText(e.status)
}
