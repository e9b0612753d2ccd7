// Package fetcher is the REST client for the combat-log service: report
// fights, per-fight events and video metadata. Responses are decoded with
// sonic and mapped into the core model; trash intervals are filtered here so
// the engine only ever sees boss fights.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	"github.com/raidsync/go-raid-sync/internal/util"
)

const requestTimeout = 30 * time.Second

// APIError is a non-2xx response from the service
type APIError struct {
	Status int
	URL    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("combat-log API returned status %d for %s", e.Status, e.URL)
}

// Client fetches reports, events and video metadata
type Client struct {
	baseURL    string
	assetURL   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client against the given API base URL. assetURL is the
// CDN root used to compose boss icon URLs; apiKey may be empty for anonymous
// access.
func NewClient(baseURL, assetURL, apiKey string) *Client {
	return &Client{
		baseURL:  baseURL,
		assetURL: assetURL,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// FetchReport retrieves a report's fight list and wall-clock bounds. Fights
// are filtered to boss encounters and sorted by start time.
func (c *Client) FetchReport(ctx context.Context, code string) (*model.Report, error) {
	var payload reportPayload
	if err := c.getJSON(ctx, fmt.Sprintf("%s/report/fights/%s", c.baseURL, url.PathEscape(code)), nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch report %s: %w", code, err)
	}

	report := mapReport(code, payload, c.assetURL)
	util.LogInfof("Fetched report %s: %d boss fights over %.0fs", code, len(report.Fights), report.DurationSec())
	return report, nil
}

// FetchEvents retrieves the death and cast events inside a fight's time
// window, ordered by timestamp. The service pages long windows via
// nextPageTimestamp.
func (c *Client) FetchEvents(ctx context.Context, code string, fight model.Fight) ([]model.RaidEvent, error) {
	var events []model.RaidEvent
	start := fight.StartMS

	for {
		query := url.Values{}
		query.Set("start", fmt.Sprintf("%d", start))
		query.Set("end", fmt.Sprintf("%d", fight.EndMS))
		query.Set("fight", fmt.Sprintf("%d", fight.ID))

		var page eventsPayload
		if err := c.getJSON(ctx, fmt.Sprintf("%s/report/events/%s", c.baseURL, url.PathEscape(code)), query, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch events for fight %d: %w", fight.ID, err)
		}

		for _, e := range page.Events {
			kind, ok := eventKind(e.Type)
			if !ok {
				continue
			}
			ev := model.RaidEvent{Kind: kind, TimestampMS: e.Timestamp}
			if e.Ability != nil {
				ev.Ability = &model.Ability{Name: e.Ability.Name, GUID: e.Ability.GUID, Type: e.Ability.Type}
			}
			events = append(events, ev)
		}

		if page.NextPageTimestamp == nil {
			break
		}
		start = *page.NextPageTimestamp
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampMS < events[j].TimestampMS
	})
	util.LogDebugf("Fetched %d events for fight %d", len(events), fight.ID)
	return events, nil
}

// FetchVideoMeta retrieves a video's duration and publish timestamp for the
// auto-sync heuristic. A missing or unparsable publish time leaves
// PublishedAt zero; auto-sync then simply does not engage.
func (c *Client) FetchVideoMeta(ctx context.Context, videoID string) (*model.VideoMeta, error) {
	var payload videoPayload
	if err := c.getJSON(ctx, fmt.Sprintf("%s/videos/%s", c.baseURL, url.PathEscape(videoID)), nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch video metadata for %s: %w", videoID, err)
	}

	meta := &model.VideoMeta{ID: videoID, DurationSec: payload.DurationSec}
	if payload.PublishedAt != "" {
		ts, err := time.Parse(time.RFC3339, payload.PublishedAt)
		if err != nil {
			util.LogWarnf("Unparsable publish time %q for video %s, auto-sync disabled", payload.PublishedAt, videoID)
		} else {
			meta.PublishedAt = ts
		}
	}
	return meta, nil
}

// getJSON performs one GET request and decodes the body
func (c *Client) getJSON(ctx context.Context, rawURL string, query url.Values, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("api_key", c.apiKey)
	}
	if encoded := query.Encode(); encoded != "" {
		rawURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(body, out)
}

// mapReport converts a wire report into the core model, dropping trash
// intervals (boss id 0) and ordering fights by start time
func mapReport(code string, payload reportPayload, assetURL string) *model.Report {
	report := &model.Report{
		Code:    code,
		Title:   payload.Title,
		StartMS: payload.Start,
		EndMS:   payload.End,
	}

	for _, f := range payload.Fights {
		if f.Boss == 0 {
			continue
		}
		fight := model.Fight{
			ID:      f.ID,
			Name:    f.Name,
			StartMS: f.StartTime,
			EndMS:   f.EndTime,
			Kill:    f.Kill != nil && *f.Kill,
		}
		if assetURL != "" {
			fight.IconURL = fmt.Sprintf("%s/bosses/%d-icon.jpg", assetURL, f.Boss)
		}
		report.Fights = append(report.Fights, fight)
	}

	sort.SliceStable(report.Fights, func(i, j int) bool {
		return report.Fights[i].StartMS < report.Fights[j].StartMS
	})
	return report
}

// eventKind maps a wire event type to the model discriminator
func eventKind(wireType string) (model.EventKind, bool) {
	switch wireType {
	case "death":
		return model.EventDeath, true
	case "cast", "begincast":
		return model.EventCast, true
	default:
		return 0, false
	}
}

// DecodeReport decodes a locally exported report JSON document (same wire
// shape as /report/fights). Used by the live report watcher.
func DecodeReport(code string, data []byte, assetURL string) (*model.Report, error) {
	var payload reportPayload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode report document: %w", err)
	}
	return mapReport(code, payload, assetURL), nil
}
