package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/barabarinov/test-varsion-app/internal"
	"github.com/julienschmidt/httprouter"
)

// StatusResponse is the payload for all version endpoints. Version is null
// when no version is set.
type StatusResponse struct {
	Version *string `json:"version"`
}

// RollbackRequest is the optional body of a rollback request. A missing or
// null version selects the most recently active version.
type RollbackRequest struct {
	Version *string `json:"version"`
}

type StatusService struct {
	logger  *slog.Logger
	tracker *VersionTracker
}

func NewStatusService(
	logger *slog.Logger, tracker *VersionTracker,
) *StatusService {
	return &StatusService{
		logger:  logger,
		tracker: tracker,
	}
}

func (s *StatusService) getStatus(
	w http.ResponseWriter, _ *http.Request, _ httprouter.Params,
) error {
	current, ok := s.tracker.Current()
	if !ok {
		return writeVersion(w, http.StatusNotFound, nil)
	}

	return writeVersion(w, http.StatusOK, &current)
}

func (s *StatusService) setStatus(
	w http.ResponseWriter, _ *http.Request, _ httprouter.Params,
) error {
	version, err := s.tracker.Set()
	if err != nil {
		return trackerHTTPError(err)
	}

	s.logger.Debug("set initial version",
		internal.LogKeyVersion, version.String())

	return writeVersion(w, http.StatusCreated, &version)
}

func (s *StatusService) updateStatus(
	w http.ResponseWriter, _ *http.Request, _ httprouter.Params,
) error {
	version, err := s.tracker.Update()
	if err != nil {
		return trackerHTTPError(err)
	}

	s.logger.Debug("updated to next minor version",
		internal.LogKeyVersion, version.String())

	return writeVersion(w, http.StatusOK, &version)
}

func (s *StatusService) rewriteStatus(
	w http.ResponseWriter, _ *http.Request, _ httprouter.Params,
) error {
	version, err := s.tracker.Rewrite()
	if err != nil {
		return trackerHTTPError(err)
	}

	s.logger.Debug("rewrote to next major version",
		internal.LogKeyVersion, version.String())

	return writeVersion(w, http.StatusOK, &version)
}

func (s *StatusService) removeStatus(
	w http.ResponseWriter, _ *http.Request, _ httprouter.Params,
) error {
	s.tracker.Remove()

	s.logger.Debug("removed current version")

	return writeVersion(w, http.StatusOK, nil)
}

func (s *StatusService) rollbackStatus(
	w http.ResponseWriter, r *http.Request, _ httprouter.Params,
) error {
	var (
		req     RollbackRequest
		version Version
	)

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		return internal.HTTPErrorf(http.StatusBadRequest,
			"invalid request body: %v", err)
	}

	if req.Version != nil {
		target, err := ParseVersion(*req.Version)
		if err != nil {
			return trackerHTTPError(err)
		}

		version, err = s.tracker.RollbackTo(target)
		if err != nil {
			return trackerHTTPError(err)
		}
	} else {
		version, err = s.tracker.Rollback()
		if err != nil {
			return trackerHTTPError(err)
		}
	}

	s.logger.Debug("rolled back version",
		internal.LogKeyVersion, version.String())

	return writeVersion(w, http.StatusOK, &version)
}

func writeVersion(
	w http.ResponseWriter, statusCode int, version *Version,
) error {
	var res StatusResponse

	if version != nil {
		v := version.String()
		res.Version = &v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	err := json.NewEncoder(w).Encode(&res)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	return nil
}

// trackerHTTPError translates tracker errors to client errors. All state
// machine failures are the caller's fault.
func trackerHTTPError(err error) error {
	if err == nil {
		return nil
	}

	switch GetTrackerErrorCode(err) {
	case ErrCodeNotSet, ErrCodeAlreadySet, ErrCodeNoHistory,
		ErrCodeInvalidVersion, ErrCodeUnreachable:
		return internal.HTTPErrorf(http.StatusBadRequest, "%v", err)
	default:
		return internal.HTTPErrorf(http.StatusInternalServerError, "%v", err)
	}
}
