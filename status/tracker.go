package status

import (
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type TrackerErrorCode string

const (
	NoErrCode             TrackerErrorCode = ""
	ErrCodeNotSet         TrackerErrorCode = "not-set"
	ErrCodeAlreadySet     TrackerErrorCode = "already-set"
	ErrCodeNoHistory      TrackerErrorCode = "no-history"
	ErrCodeInvalidVersion TrackerErrorCode = "invalid-version"
	ErrCodeUnreachable    TrackerErrorCode = "unreachable"
)

type TrackerError struct {
	cause error
	code  TrackerErrorCode
	msg   string
}

func TrackerErrorf(code TrackerErrorCode, format string, a ...any) error {
	e := fmt.Errorf(format, a...)

	return TrackerError{
		cause: errors.Unwrap(e),
		code:  code,
		msg:   e.Error(),
	}
}

func (e TrackerError) Error() string {
	return e.msg
}

func (e TrackerError) Unwrap() error {
	return e.cause
}

func IsTrackerErrorCode(err error, code TrackerErrorCode) bool {
	return GetTrackerErrorCode(err) == code
}

func GetTrackerErrorCode(err error) TrackerErrorCode {
	if err == nil {
		return NoErrCode
	}

	var e TrackerError

	if errors.As(err, &e) {
		return e.code
	}

	return ""
}

// VersionTracker holds the current application version together with the
// ordered history of previously active versions, oldest first. All state
// transitions are serialised under an exclusive lock.
type VersionTracker struct {
	m       sync.RWMutex
	current Version
	set     bool
	history []Version

	transitions  *prometheus.CounterVec
	historyDepth prometheus.Gauge
}

func NewVersionTracker(
	metricsRegisterer prometheus.Registerer,
) (*VersionTracker, error) {
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "status_version_transitions_total",
		Help: "The number of version state transitions that have been attempted.",
	}, []string{"operation", "outcome"})

	err := metricsRegisterer.Register(transitions)
	if err != nil {
		return nil, fmt.Errorf("register %q metric: %w",
			"status_version_transitions_total", err)
	}

	historyDepth := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "status_version_history_depth",
		Help: "The number of previously active versions kept for rollback.",
	})

	err = metricsRegisterer.Register(historyDepth)
	if err != nil {
		return nil, fmt.Errorf("register %q metric: %w",
			"status_version_history_depth", err)
	}

	return &VersionTracker{
		transitions:  transitions,
		historyDepth: historyDepth,
	}, nil
}

// Current returns the currently active version, if any.
func (t *VersionTracker) Current() (Version, bool) {
	t.m.RLock()
	defer t.m.RUnlock()

	return t.current, t.set
}

// History returns a copy of the version history, oldest first.
func (t *VersionTracker) History() []Version {
	t.m.RLock()
	defer t.m.RUnlock()

	history := make([]Version, len(t.history))

	copy(history, t.history)

	return history
}

// Set initialises the version to 1. It fails if a version already has been
// set.
func (t *VersionTracker) Set() (Version, error) {
	t.m.Lock()
	defer t.m.Unlock()

	if t.set {
		t.observe("set", false)

		return Version{}, TrackerErrorf(ErrCodeAlreadySet,
			"version is already set to %s", t.current)
	}

	t.current = Version{Major: 1}
	t.set = true

	t.observe("set", true)

	return t.current, nil
}

// Update bumps the minor version, pushing the prior version onto the
// history.
func (t *VersionTracker) Update() (Version, error) {
	t.m.Lock()
	defer t.m.Unlock()

	if !t.set {
		t.observe("update", false)

		return Version{}, TrackerErrorf(ErrCodeNotSet,
			"no version has been set")
	}

	t.history = append(t.history, t.current)
	t.current.Minor++

	t.observe("update", true)

	return t.current, nil
}

// Rewrite bumps the major version and resets the minor version, pushing the
// prior version onto the history.
func (t *VersionTracker) Rewrite() (Version, error) {
	t.m.Lock()
	defer t.m.Unlock()

	if !t.set {
		t.observe("rewrite", false)

		return Version{}, TrackerErrorf(ErrCodeNotSet,
			"no version has been set")
	}

	t.history = append(t.history, t.current)
	t.current = Version{Major: t.current.Major + 1}

	t.observe("rewrite", true)

	return t.current, nil
}

// Remove clears the current version. Removing when no version is set is not
// an error. The removed version is kept in the history so that it stays
// reachable for targeted rollbacks.
func (t *VersionTracker) Remove() {
	t.m.Lock()
	defer t.m.Unlock()

	if t.set {
		t.history = append(t.history, t.current)
		t.set = false
	}

	t.observe("remove", true)
}

// Rollback restores the most recently active version from the history.
func (t *VersionTracker) Rollback() (Version, error) {
	t.m.Lock()
	defer t.m.Unlock()

	if !t.set {
		t.observe("rollback", false)

		return Version{}, TrackerErrorf(ErrCodeNotSet,
			"no version has been set")
	}

	if len(t.history) == 0 {
		t.observe("rollback", false)

		return Version{}, TrackerErrorf(ErrCodeNoHistory,
			"no previous version to roll back to")
	}

	t.current = t.history[len(t.history)-1]
	t.history = t.history[:len(t.history)-1]

	t.observe("rollback", true)

	return t.current, nil
}

// RollbackTo restores a specific previously active version. The history is
// truncated to the entries that are strictly older than the restored
// version. Targeted rollbacks are allowed when no current version is set, as
// removed versions stay in the history.
func (t *VersionTracker) RollbackTo(target Version) (Version, error) {
	t.m.Lock()
	defer t.m.Unlock()

	// Restore the latest occurrence if the version was active more than
	// once.
	idx := -1

	for i := len(t.history) - 1; i >= 0; i-- {
		if t.history[i] == target {
			idx = i

			break
		}
	}

	if idx == -1 {
		t.observe("rollback", false)

		return Version{}, TrackerErrorf(ErrCodeUnreachable,
			"version %s has not been an active version", target)
	}

	t.current = target
	t.set = true
	t.history = t.history[:idx]

	t.observe("rollback", true)

	return t.current, nil
}

// observe must be called while holding the state lock.
func (t *VersionTracker) observe(operation string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}

	t.transitions.WithLabelValues(operation, outcome).Inc()
	t.historyDepth.Set(float64(len(t.history)))
}
