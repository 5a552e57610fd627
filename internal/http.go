package internal

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type HTTPError struct {
	Status     string
	StatusCode int
	Header     http.Header
	Body       io.Reader
}

func (e *HTTPError) Error() string {
	if e.Status != "" {
		return e.Status
	}

	return http.StatusText(e.StatusCode)
}

func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		Status:     message,
		StatusCode: statusCode,
		Header: http.Header{
			"Content-Type": []string{"text/plain"},
		},
		Body: strings.NewReader(message),
	}
}

func HTTPErrorf(statusCode int, format string, a ...any) *HTTPError {
	return NewHTTPError(statusCode, fmt.Sprintf(format, a...))
}

func IsHTTPErrorWithStatus(err error, status int) bool {
	var httpErr *HTTPError

	if !errors.As(err, &httpErr) {
		return false
	}

	return httpErr.StatusCode == status
}

// RHandleFunc wraps an error-returning handler function so that it can be
// registered with an httprouter.Router.
func RHandleFunc(
	fn func(http.ResponseWriter, *http.Request, httprouter.Params) error,
) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		err := fn(w, r, p)
		if err != nil {
			WriteHTTPError(w, err)
		}
	}
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError

	if !errors.As(err, &httpErr) {
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	if httpErr.Header != nil {
		for k, v := range httpErr.Header {
			w.Header()[k] = v
		}
	}

	statusCode := httpErr.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}

	w.WriteHeader(statusCode)

	if httpErr.Body != nil {
		_, _ = io.Copy(w, httpErr.Body)
	}
}
