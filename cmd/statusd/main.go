package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/barabarinov/test-varsion-app/internal"
	"github.com/barabarinov/test-varsion-app/status"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ttab/elephantine"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func main() {
	runCmd := cli.Command{
		Name:        "run",
		Description: "Runs the status server",
		Action:      runServer,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				EnvVars: []string{"LISTEN_ADDR"},
				Value:   ":5000",
			},
			&cli.StringFlag{
				Name:    "profile-addr",
				EnvVars: []string{"PROFILE_ADDR"},
				Value:   ":5001",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
			},
			&cli.StringSliceFlag{
				Name:    "cors-host",
				EnvVars: []string{"CORS_HOSTS"},
				Value:   cli.NewStringSlice("localhost"),
			},
		},
	}

	var app = cli.App{
		Name:  "statusd",
		Usage: "Tracks the application version status",
		Commands: []*cli.Command{
			&runCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("failed to run server",
			elephantine.LogKeyError, err)
		os.Exit(1)
	}
}

func runServer(c *cli.Context) error {
	var (
		addr        = c.String("addr")
		profileAddr = c.String("profile-addr")
		logLevel    = c.String("log-level")
		corsHosts   = c.StringSlice("cors-host")
	)

	logger := internal.SetUpLogger(logLevel, os.Stdout)

	grace := internal.NewGracefulShutdown(logger, 10*time.Second)

	tracker, err := status.NewVersionTracker(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to create version tracker: %w", err)
	}

	router := httprouter.New()

	err = status.SetUpRouter(router,
		status.WithStatusAPI(logger, tracker),
	)
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	healthServer := internal.NewHealthServer(profileAddr)

	healthServer.AddReadyFunction("api", apiReadyCheck(addr))

	group, gCtx := errgroup.WithContext(c.Context)

	group.Go(func() error {
		log := logger.With(internal.LogKeyComponent, "api")

		log.Debug("starting API server")

		serveCtx := grace.CancelOnStop(gCtx)

		err := status.ListenAndServe(serveCtx, addr, corsHosts, router)
		if errors.Is(err, http.ErrServerClosed) {
			log.Debug("API server closed")
		} else if err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}

		// Take the health server down with us.
		grace.Stop()

		return nil
	})

	group.Go(func() error {
		log := logger.With(internal.LogKeyComponent, "health")

		log.Debug("starting health server")

		serveCtx := grace.CancelOnQuit(gCtx)

		err := healthServer.ListenAndServe(serveCtx)
		if errors.Is(err, http.ErrServerClosed) {
			log.Debug("health server closed")
		} else if err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}

		return nil
	})

	err = group.Wait()
	if err != nil {
		return fmt.Errorf("server failure: %w", err)
	}

	return nil
}

func apiReadyCheck(addr string) internal.ReadyFunc {
	return func(ctx context.Context) error {
		var d net.Dialer

		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("API is not accepting connections: %w", err)
		}

		_ = conn.Close()

		return nil
	}
}
