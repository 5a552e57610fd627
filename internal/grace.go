package internal

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// GracefulShutdown coordinates two-phase shutdown of the process. SIGTERM
// closes the stop channel and gives in-flight work a grace period before
// quit is closed. SIGINT skips the grace period.
type GracefulShutdown struct {
	logger   *slog.Logger
	stopOnce sync.Once
	quitOnce sync.Once
	stop     chan struct{}
	quit     chan struct{}
}

func NewGracefulShutdown(logger *slog.Logger, timeout time.Duration) *GracefulShutdown {
	gs := GracefulShutdown{
		logger: logger,
		stop:   make(chan struct{}),
		quit:   make(chan struct{}),
	}

	signals := make(chan os.Signal, 1)

	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)

		select {
		case sig := <-signals:
			if sig == syscall.SIGINT {
				logger.Warn("shutting down")
				gs.finish()

				return
			}

			logger.Warn("asked to stop, waiting for cleanup",
				LogKeyDelay, timeout)
			gs.Stop()
		case <-gs.stop:
		}
	}()

	// The grace period starts when the first shutdown phase does,
	// regardless of what triggered it.
	go func() {
		<-gs.stop

		select {
		case <-gs.quit:
		case <-time.After(timeout):
			logger.Warn("shutting down")
			gs.finish()
		}
	}()

	return &gs
}

func (gs *GracefulShutdown) finish() {
	gs.Stop()

	gs.quitOnce.Do(func() {
		close(gs.quit)
	})
}

// Stop initiates shutdown without waiting for a signal.
func (gs *GracefulShutdown) Stop() {
	gs.stopOnce.Do(func() {
		close(gs.stop)
	})
}

func (gs *GracefulShutdown) ShouldStop() <-chan struct{} {
	return gs.stop
}

func (gs *GracefulShutdown) ShouldQuit() <-chan struct{} {
	return gs.quit
}

// CancelOnStop returns a context that is cancelled when the first shutdown
// phase starts.
func (gs *GracefulShutdown) CancelOnStop(ctx context.Context) context.Context {
	cCtx, cancel := context.WithCancel(ctx)

	go func() {
		<-gs.stop
		cancel()
	}()

	return cCtx
}

// CancelOnQuit returns a context that is cancelled when the grace period has
// run out.
func (gs *GracefulShutdown) CancelOnQuit(ctx context.Context) context.Context {
	cCtx, cancel := context.WithCancel(ctx)

	go func() {
		<-gs.quit
		cancel()
	}()

	return cCtx
}
