package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/classpilot/classpilot-go/internal/jobs"
)

type WatchCmd struct {
	MaterialID string        `arg:"" help:"Material ID to watch"`
	Interval   time.Duration `help:"Poll interval" default:"1s"`
}

func (w *WatchCmd) Run(ctx context.Context, globals *Globals) error {
	services, err := buildServices(globals)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan jobs.Snapshot, 1)
	tracker := jobs.NewTracker(services.AIChat, w.MaterialID, jobs.Config{
		Interval: w.Interval,
		OnUpdate: func(snap jobs.Snapshot) {
			switch snap.Phase {
			case jobs.PhaseChecking:
				fmt.Println("Checking material...")
			case jobs.PhaseStarting:
				fmt.Println("Processing queued...")
			case jobs.PhaseProcessing:
				fmt.Printf("Processing %d%% (%d/%d)\n", snap.ProgressPercent, snap.Processed, snap.Total)
			default:
				if snap.Phase.Terminal() {
					done <- snap
				}
			}
		},
	})
	defer tracker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	tracker.Start(ctx)

	select {
	case <-sigChan:
		fmt.Println("Interrupted, stopping watch...")
		return nil
	case snap := <-done:
		switch snap.Phase {
		case jobs.PhaseCompleted:
			if snap.ConversationID != "" {
				fmt.Printf("Done: conversation %s is ready\n", snap.ConversationID)
			} else {
				fmt.Println("Done: material processed")
			}
			return nil
		case jobs.PhaseNotFound:
			return fmt.Errorf("material %s has no processing job", w.MaterialID)
		default:
			return fmt.Errorf("processing failed: %v", snap.Err)
		}
	}
}
