package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raidsync/go-raid-sync/internal/core/model"
	input "github.com/raidsync/go-raid-sync/internal/presentation/interaction"
)

type stubSource struct {
	report *model.Report
	video  *model.VideoMeta
	events []model.RaidEvent
}

func (s *stubSource) FetchReport(ctx context.Context, code string) (*model.Report, error) {
	return s.report, nil
}

func (s *stubSource) FetchEvents(ctx context.Context, code string, fight model.Fight) ([]model.RaidEvent, error) {
	return s.events, nil
}

func (s *stubSource) FetchVideoMeta(ctx context.Context, videoID string) (*model.VideoMeta, error) {
	return s.video, nil
}

type stubInput struct {
	keys chan input.KeyEvent
}

func (s *stubInput) Events() <-chan input.KeyEvent { return s.keys }
func (s *stubInput) Close() error                  { return nil }

func newTestOrchestrator(t *testing.T) (*Orchestrator, *stubInput, chan error) {
	t.Helper()

	cfg := &Config{
		ReportCode:    "a1b2c3",
		VideoID:       "vid123",
		APIBaseURL:    "http://stub.invalid",
		ViewportWidth: 800,
		UIRefreshRate: 200,
		PollInterval:  10 * time.Millisecond,
		OutputDir:     t.TempDir(),
	}
	o, err := NewOrchestrator(cfg)
	require.NoError(t, err)

	o.source = &stubSource{
		report: &model.Report{
			Code:    "a1b2c3",
			StartMS: 1700000000000,
			EndMS:   1700003600000,
			Fights: []model.Fight{
				{ID: 1, Name: "Gatekeeper", StartMS: 600000, EndMS: 660000, Kill: true},
			},
		},
		video: &model.VideoMeta{ID: "vid123", DurationSec: 100},
		events: []model.RaidEvent{
			{Kind: model.EventCast, TimestampMS: 610000},
			{Kind: model.EventDeath, TimestampMS: 655000},
		},
	}
	keys := &stubInput{keys: make(chan input.KeyEvent, 10)}
	o.input = keys

	done := make(chan error, 1)
	return o, keys, done
}

func TestOrchestratorRunAndQuit(t *testing.T) {
	o, keys, done := newTestOrchestrator(t)

	go func() { done <- o.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		return o.state.Report() != nil
	}, 2*time.Second, 10*time.Millisecond, "report never loaded")

	keys.keys <- input.KeyEvent{Key: 'q', Type: input.KeyChar}

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("q did not stop the event loop")
	}
}

func TestOrchestratorFightSelectionLoadsEvents(t *testing.T) {
	o, keys, done := newTestOrchestrator(t)

	go func() { done <- o.Run(context.Background()) }()
	defer func() {
		keys.keys <- input.KeyEvent{Key: 'q', Type: input.KeyChar}
		<-done
	}()

	require.Eventually(t, func() bool {
		return o.state.Report() != nil
	}, 2*time.Second, 10*time.Millisecond)

	keys.keys <- input.KeyEvent{Key: '1', Type: input.KeyChar}

	require.Eventually(t, func() bool {
		return len(o.state.Events()) == 2
	}, 2*time.Second, 10*time.Millisecond, "selecting a fight must load its events")
}

func TestOrchestratorOffsetNudge(t *testing.T) {
	o, keys, done := newTestOrchestrator(t)

	go func() { done <- o.Run(context.Background()) }()
	defer func() {
		keys.keys <- input.KeyEvent{Key: 'q', Type: input.KeyChar}
		<-done
	}()

	require.Eventually(t, func() bool {
		return o.state.Report() != nil
	}, 2*time.Second, 10*time.Millisecond)

	// Zero publish time means no auto-sync, so no offset status yet
	assert.Empty(t, o.state.Status())

	keys.keys <- input.KeyEvent{Type: input.KeyRight}

	require.Eventually(t, func() bool {
		return o.state.Status() != ""
	}, 2*time.Second, 10*time.Millisecond, "nudging must publish the new offset")
	assert.Contains(t, o.state.Status(), "offset")
}

func TestOrchestratorSnapshot(t *testing.T) {
	o, keys, done := newTestOrchestrator(t)

	go func() { done <- o.Run(context.Background()) }()
	defer func() {
		keys.keys <- input.KeyEvent{Key: 'q', Type: input.KeyChar}
		<-done
	}()

	require.Eventually(t, func() bool {
		return o.state.Report() != nil
	}, 2*time.Second, 10*time.Millisecond)

	keys.keys <- input.KeyEvent{Key: 's', Type: input.KeyChar}

	require.Eventually(t, func() bool {
		matches, _ := filepath.Glob(filepath.Join(o.config.OutputDir, "sync-*.png"))
		return len(matches) == 1
	}, 2*time.Second, 20*time.Millisecond, "s must write a frame snapshot")
}

func TestOrchestratorPanKeysShiftView(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	src := o.source.(*stubSource)
	o.installDataset(src.report, src.video)

	before := o.controller.View().Pan
	o.handleKeyboard(input.KeyEvent{Key: ']', Type: input.KeyChar})
	assert.InDelta(t, before+panStepPx, o.controller.View().Pan, 1e-9)

	o.handleKeyboard(input.KeyEvent{Key: '[', Type: input.KeyChar})
	o.handleKeyboard(input.KeyEvent{Key: '[', Type: input.KeyChar})
	assert.InDelta(t, before-panStepPx, o.controller.View().Pan, 1e-9)
}

func TestOrchestratorReportReloadAnnouncesUpdate(t *testing.T) {
	o, _, _ := newTestOrchestrator(t)
	src := o.source.(*stubSource)
	o.installDataset(src.report, src.video)

	o.offsets.SetOffset(42)
	before := o.offsets.Offset()

	updated := *src.report
	updated.Fights = append(append([]model.Fight{}, src.report.Fights...),
		model.Fight{ID: 2, Name: "Archon", StartMS: 900000, EndMS: 1200000})
	o.handleReportUpdate(&updated)

	assert.Equal(t, before, o.offsets.Offset(), "live reload must not rewind manual alignment")
	assert.Len(t, o.state.Report().Fights, 2)
	assert.Contains(t, o.state.Status(), "report reloaded")
	assert.Contains(t, o.state.Status(), "2 fights")
}

func TestOrchestratorContextCancel(t *testing.T) {
	o, _, done := newTestOrchestrator(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { done <- o.Run(ctx) }()

	require.Eventually(t, func() bool {
		return o.state.Report() != nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not stop the event loop")
	}
}
