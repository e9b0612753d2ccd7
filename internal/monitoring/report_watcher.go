// Package monitoring watches a locally exported report document and emits a
// fresh dataset snapshot whenever the logging client rewrites it, which keeps
// the timeline current while a raid is still in progress.
package monitoring

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	"github.com/raidsync/go-raid-sync/internal/data/fetcher"
	"github.com/raidsync/go-raid-sync/internal/util"
)

// debounceDelay coalesces the write bursts log exporters produce
const debounceDelay = 200 * time.Millisecond

// ReportWatcher emits a decoded report every time the watched file settles
// after a change
type ReportWatcher struct {
	path     string
	assetURL string

	watcher *fsnotify.Watcher
	events  chan *model.Report

	closeOnce sync.Once
	done      chan struct{}
}

// NewReportWatcher watches the report document at path. The containing
// directory is watched rather than the file itself so atomic
// rename-into-place updates are seen.
func NewReportWatcher(path, assetURL string) (*ReportWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	rw := &ReportWatcher{
		path:     abs,
		assetURL: assetURL,
		watcher:  watcher,
		events:   make(chan *model.Report, 1),
		done:     make(chan struct{}),
	}
	go rw.run()
	return rw, nil
}

// Events returns the channel of decoded report snapshots
func (rw *ReportWatcher) Events() <-chan *model.Report {
	return rw.events
}

// Load reads and decodes the watched document immediately
func (rw *ReportWatcher) Load() (*model.Report, error) {
	data, err := os.ReadFile(rw.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report document: %w", err)
	}
	code := filepath.Base(rw.path)
	return fetcher.DecodeReport(code, data, rw.assetURL)
}

func (rw *ReportWatcher) run() {
	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-rw.done:
			return

		case event, ok := <-rw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != rw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
			} else {
				debounce.Reset(debounceDelay)
			}
			debounceC = debounce.C

		case <-debounceC:
			debounceC = nil
			report, err := rw.Load()
			if err != nil {
				util.LogWarnf("Report reload failed: %v", err)
				continue
			}
			// Keep only the newest snapshot when the consumer lags
			select {
			case rw.events <- report:
			default:
				select {
				case <-rw.events:
				default:
				}
				rw.events <- report
			}
			util.LogInfof("Reloaded report from %s: %d fights", rw.path, len(report.Fights))

		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			util.LogWarnf("File watcher error: %v", err)
		}
	}
}

// Close stops watching and releases the underlying watcher. Idempotent.
func (rw *ReportWatcher) Close() error {
	var err error
	rw.closeOnce.Do(func() {
		close(rw.done)
		err = rw.watcher.Close()
	})
	return err
}
