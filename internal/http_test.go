package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/barabarinov/test-varsion-app/internal"
	"github.com/barabarinov/test-varsion-app/internal/test"
	"github.com/julienschmidt/httprouter"
)

func TestRHandleFuncWritesErrors(t *testing.T) {
	handle := internal.RHandleFunc(func(
		_ http.ResponseWriter, _ *http.Request, _ httprouter.Params,
	) error {
		return internal.HTTPErrorf(http.StatusBadRequest, "bad input")
	})

	rec := httptest.NewRecorder()

	handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	test.Equal(t, http.StatusBadRequest, rec.Code,
		"get the error status code")
	test.Equal(t, "bad input", rec.Body.String(),
		"get the error message")
	test.Equal(t, "text/plain", rec.Header().Get("Content-Type"),
		"get a plain text error")
}

func TestRHandleFuncUnknownError(t *testing.T) {
	handle := internal.RHandleFunc(func(
		_ http.ResponseWriter, _ *http.Request, _ httprouter.Params,
	) error {
		return errors.New("something broke")
	})

	rec := httptest.NewRecorder()

	handle(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	test.Equal(t, http.StatusInternalServerError, rec.Code,
		"treat unknown errors as internal errors")
}

func TestIsHTTPErrorWithStatus(t *testing.T) {
	err := internal.HTTPErrorf(http.StatusNotFound, "no such thing")

	if !internal.IsHTTPErrorWithStatus(err, http.StatusNotFound) {
		t.Fatal("expected the error status to match")
	}

	wrapped := fmt.Errorf("fetching thing: %w", err)

	if !internal.IsHTTPErrorWithStatus(wrapped, http.StatusNotFound) {
		t.Fatal("expected the status to match through wrapping")
	}

	if internal.IsHTTPErrorWithStatus(wrapped, http.StatusBadRequest) {
		t.Fatal("expected a status mismatch to be detected")
	}

	if internal.IsHTTPErrorWithStatus(errors.New("plain"), http.StatusNotFound) {
		t.Fatal("expected plain errors not to match")
	}
}
