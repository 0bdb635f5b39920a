package lifecycle

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/lzjever/kube-workspaces/internal/workspace"
)

// DefaultPollInterval is the fixed delay between poll iterations.
const DefaultPollInterval = 2 * time.Second

// API is the slice of the workspace client the orchestrator drives.
type API interface {
	Start(ctx context.Context) (workspace.Status, error)
	Status(ctx context.Context) (workspace.Status, error)
	Stop(ctx context.Context) error
}

// Orchestrator drives a workspace toward a terminal lifecycle state by
// polling the control plane at a fixed interval. There is no iteration cap;
// the wait is unbounded and interrupted only through ctx.
type Orchestrator struct {
	api      API
	interval time.Duration
	progress io.Writer
	log      *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

func New(api API, progress io.Writer, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		api:      api,
		interval: DefaultPollInterval,
		progress: progress,
		log:      log,
		sleep:    sleepCtx,
	}
}

// WaitReady drives the workspace to the ready phase with a published SSH
// endpoint and returns the first snapshot satisfying both. Each phase change
// emits one transition marker; every poll iteration prints a tick. Errors
// from any iteration abort the wait immediately.
func (o *Orchestrator) WaitReady(ctx context.Context) (workspace.Status, error) {
	st, err := o.api.Status(ctx)
	if err != nil {
		return workspace.Status{}, err
	}
	if st.IsReady() {
		fmt.Fprintln(o.progress, "Your workspace is already running!")
		return st, nil
	}

	fmt.Fprintf(o.progress, "Launching your workspace from phase: %s\n", st.Phase)
	fmt.Fprintln(o.progress, "This might take a few minutes. Please be patient.")

	last := st.Phase
	for {
		st, err = o.api.Start(ctx)
		if err != nil {
			return workspace.Status{}, err
		}
		if st.Phase != last {
			fmt.Fprintf(o.progress, "\n%s->", st.Phase)
			o.log.Debug("phase transition",
				zap.String("from", string(last)),
				zap.String("to", string(st.Phase)))
			last = st.Phase
		}
		if st.IsReady() {
			fmt.Fprintln(o.progress, "\nWorkspace is ready!")
			return st, nil
		}
		fmt.Fprint(o.progress, "*")
		if err := o.sleep(ctx, o.interval); err != nil {
			return workspace.Status{}, err
		}
	}
}

// StopAndWait tears the workspace down and polls until the control plane no
// longer knows it. Stopping an absent workspace is a no-op: no PodStop
// request is issued at all.
func (o *Orchestrator) StopAndWait(ctx context.Context) error {
	st, err := o.api.Status(ctx)
	if err != nil {
		return err
	}
	if st.Phase == workspace.PhaseNotFound {
		fmt.Fprintln(o.progress, "Your workspace is already stopped")
		return nil
	}

	fmt.Fprintln(o.progress, "Stopping workspace...")
	if err := o.api.Stop(ctx); err != nil {
		return err
	}
	for {
		st, err = o.api.Status(ctx)
		if err != nil {
			return err
		}
		if st.Phase == workspace.PhaseNotFound {
			break
		}
		fmt.Fprint(o.progress, "*")
		if err := o.sleep(ctx, o.interval); err != nil {
			return err
		}
	}
	fmt.Fprintln(o.progress, "\nWorkspace was shut down.")
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
