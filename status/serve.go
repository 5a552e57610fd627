package status

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/barabarinov/test-varsion-app/internal"
	"github.com/julienschmidt/httprouter"
	"github.com/ttab/elephantine"
)

type RouterOption func(router *httprouter.Router) error

func SetUpRouter(
	router *httprouter.Router,
	opts ...RouterOption,
) error {
	for _, opt := range opts {
		err := opt(router)
		if err != nil {
			return err
		}
	}

	return nil
}

// WithStatusAPI registers the version status endpoints. Requests with the
// wrong method for a path get a 405 from the router.
func WithStatusAPI(
	logger *slog.Logger, tracker *VersionTracker,
) RouterOption {
	return func(router *httprouter.Router) error {
		service := NewStatusService(logger, tracker)

		router.GET("/status",
			internal.RHandleFunc(service.getStatus))
		router.POST("/setStatus",
			internal.RHandleFunc(service.setStatus))
		router.PATCH("/updateStatus",
			internal.RHandleFunc(service.updateStatus))
		router.PUT("/rewriteStatus",
			internal.RHandleFunc(service.rewriteStatus))
		router.DELETE("/removeStatus",
			internal.RHandleFunc(service.removeStatus))
		router.POST("/rollbackStatusVersion",
			internal.RHandleFunc(service.rollbackStatus))

		return nil
	}
}

func ListenAndServe(
	ctx context.Context, addr string, corsHosts []string, h http.Handler,
) error {
	server := http.Server{
		Addr:              addr,
		Handler:           apiHandler(corsHosts, h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	//nolint:wrapcheck
	return elephantine.ListenAndServeContext(ctx, &server, 10*time.Second)
}

func apiHandler(corsHosts []string, h http.Handler) http.Handler {
	var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
		ctx := elephantine.WithLogMetadata(r.Context())

		h.ServeHTTP(w, r.WithContext(ctx))
	}

	return elephantine.CORSMiddleware(elephantine.CORSOptions{
		AllowInsecure:          false,
		AllowInsecureLocalhost: true,
		Hosts:                  corsHosts,
		AllowedMethods: []string{
			"GET", "POST", "PATCH", "PUT", "DELETE",
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}, handler)
}
