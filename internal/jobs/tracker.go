// Package jobs observes server-side asynchronous work by polling. The only
// job the backend currently exposes is material ingestion for AI chat.
package jobs

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/models"
)

// DefaultPollInterval is the delay between status polls.
const DefaultPollInterval = time.Second

// Phase is the tracker's observable state.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseChecking   Phase = "checking"
	PhaseStarting   Phase = "starting"
	PhaseProcessing Phase = "processing"
	PhaseCompleted  Phase = "completed"
	PhaseFailed     Phase = "failed"
	PhaseNotFound   Phase = "not_found"
)

// Terminal reports whether the phase ends tracking.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseCompleted, PhaseFailed, PhaseNotFound:
		return true
	}
	return false
}

// StatusSource is the slice of the AI chat service the tracker needs.
// *service.AIChatService satisfies it.
type StatusSource interface {
	InitiateChat(ctx context.Context, materialID string) (*api.Result[models.InitiateChatResult], error)
	ProcessingStatus(ctx context.Context, materialID string) (*api.Result[models.ProcessingStatus], error)
}

// Snapshot is a point-in-time view of the tracked job.
type Snapshot struct {
	Phase           Phase
	ProgressPercent int
	Processed       int
	Total           int
	ConversationID  string
	Err             error
}

// Config holds tracker construction parameters.
type Config struct {
	// Interval between polls. Zero means DefaultPollInterval.
	Interval time.Duration
	// OnUpdate, when set, is called after every phase or progress change.
	// Invoked outside the tracker's lock; it may call Status or Stop.
	OnUpdate func(Snapshot)
	// Logger for tracking events. Zero value disables logging.
	Logger zerolog.Logger
}

// Tracker polls the ingestion status of one material until it reaches a
// terminal phase. A tracker owns at most one timer at a time; Stop releases
// it, and terminal phases release it without Stop being called.
//
// The first polling error ends tracking: an error whose message mentions
// "not found" becomes PhaseNotFound, anything else PhaseFailed. Polling never
// panics or propagates errors to the caller.
type Tracker struct {
	source     StatusSource
	materialID string
	interval   time.Duration
	onUpdate   func(Snapshot)
	logger     zerolog.Logger

	mu      sync.Mutex
	snap    Snapshot
	running bool
	stopCh  chan struct{}
}

// NewTracker creates a tracker for one material.
func NewTracker(source StatusSource, materialID string, cfg Config) *Tracker {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{
		source:     source,
		materialID: materialID,
		interval:   interval,
		onUpdate:   cfg.OnUpdate,
		logger:     cfg.Logger,
		snap:       Snapshot{Phase: PhaseIdle},
	}
}

// Status returns the current snapshot.
func (t *Tracker) Status() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// Start begins tracking. No-op when a run is already active.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return
	}
	t.running = true
	stopCh := make(chan struct{})
	t.stopCh = stopCh
	t.snap = Snapshot{Phase: PhaseChecking}
	t.mu.Unlock()

	t.notify()
	t.logger.Debug().Str("materialId", t.materialID).Msg("tracking started")

	go t.run(ctx, stopCh)
}

// Stop halts polling. Idempotent and safe from any phase; the current
// snapshot is left as-is.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	close(t.stopCh)
	// Detach the run so an in-flight poll fails the liveness check and
	// cannot rewrite the snapshot after Stop.
	t.stopCh = nil
	t.mu.Unlock()

	t.logger.Debug().Str("materialId", t.materialID).Msg("tracking stopped")
}

// Retry discards the current run and restarts the whole flow from the
// initial check.
func (t *Tracker) Retry(ctx context.Context) {
	t.Stop()

	t.mu.Lock()
	t.snap = Snapshot{Phase: PhaseIdle}
	t.mu.Unlock()

	t.Start(ctx)
}

func (t *Tracker) run(ctx context.Context, stopCh chan struct{}) {
	defer func() {
		t.mu.Lock()
		if t.stopCh == stopCh {
			t.running = false
		}
		t.mu.Unlock()
	}()

	result, err := t.source.InitiateChat(ctx, t.materialID)
	if err != nil {
		t.settle(stopCh, classifyError(err), err)
		return
	}

	if result.Data.ConversationID != "" || result.Data.AlreadyProcessed {
		// Existing conversation or fully processed material: nothing to poll.
		t.mu.Lock()
		if t.stopCh != stopCh || t.snap.Phase.Terminal() {
			t.mu.Unlock()
			return
		}
		t.snap.Phase = PhaseCompleted
		t.snap.ProgressPercent = 100
		t.snap.ConversationID = result.Data.ConversationID
		t.mu.Unlock()

		t.notify()
		t.logger.Debug().Str("materialId", t.materialID).Msg("material already processed")
		return
	}

	t.transition(stopCh, PhaseStarting)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := t.tick(ctx, stopCh); done {
				return
			}
		}
	}
}

// tick polls once. Returns true when the tracker has reached a terminal
// phase and polling must end.
func (t *Tracker) tick(ctx context.Context, stopCh chan struct{}) bool {
	result, err := t.source.ProcessingStatus(ctx, t.materialID)
	if err != nil {
		t.settle(stopCh, classifyError(err), err)
		return true
	}

	status := result.Data
	switch status.Status {
	case models.ProcessingCompleted:
		t.settle(stopCh, PhaseCompleted, nil)
		return true

	case models.ProcessingFailed:
		failure := errors.New("processing failed")
		if status.Error != "" {
			failure = errors.New(status.Error)
		}
		t.settle(stopCh, PhaseFailed, failure)
		return true

	case models.ProcessingNotFound:
		t.settle(stopCh, PhaseNotFound, nil)
		return true

	case models.ProcessingInProgress:
		t.progress(stopCh, PhaseProcessing, status.ProcessedChunks, status.TotalChunks)
		return false

	default:
		// pending / starting
		t.progress(stopCh, PhaseStarting, status.ProcessedChunks, status.TotalChunks)
		return false
	}
}

// settle moves to a terminal phase unless this run has been superseded.
func (t *Tracker) settle(stopCh chan struct{}, phase Phase, err error) {
	t.mu.Lock()
	if t.stopCh != stopCh || t.snap.Phase.Terminal() {
		t.mu.Unlock()
		return
	}
	t.snap.Phase = phase
	t.snap.Err = err
	if phase == PhaseCompleted {
		t.snap.ProgressPercent = 100
	}
	t.mu.Unlock()

	t.notify()
	t.logger.Debug().
		Str("materialId", t.materialID).
		Str("phase", string(phase)).
		Err(err).
		Msg("tracking settled")
}

func (t *Tracker) transition(stopCh chan struct{}, phase Phase) {
	t.mu.Lock()
	if t.stopCh != stopCh || t.snap.Phase.Terminal() {
		t.mu.Unlock()
		return
	}
	t.snap.Phase = phase
	t.mu.Unlock()
	t.notify()
}

func (t *Tracker) progress(stopCh chan struct{}, phase Phase, processed, total int) {
	t.mu.Lock()
	if t.stopCh != stopCh || t.snap.Phase.Terminal() {
		t.mu.Unlock()
		return
	}
	t.snap.Phase = phase
	t.snap.Processed = processed
	t.snap.Total = total
	if total > 0 {
		t.snap.ProgressPercent = int(math.Round(float64(processed) / float64(total) * 100))
	}
	t.mu.Unlock()
	t.notify()
}

func (t *Tracker) notify() {
	if t.onUpdate == nil {
		return
	}
	t.onUpdate(t.Status())
}

// classifyError maps a polling error to its terminal phase. A "not found"
// message means the material has no job to observe; anything else is a
// failure on first occurrence.
func classifyError(err error) Phase {
	if strings.Contains(strings.ToLower(err.Error()), "not found") {
		return PhaseNotFound
	}
	return PhaseFailed
}
