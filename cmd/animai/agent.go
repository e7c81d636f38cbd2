package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/suPer8Hu/animai/internal/eggagent"
	"github.com/suPer8Hu/animai/internal/httpapi/middleware"
)

func NewAgentCommand() *cobra.Command {
	addr := ":4000"

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Runs the rule-based egg reply agent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := gin.New()
			r.Use(gin.Logger(), middleware.Recovery())
			eggagent.Register(r)

			srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
			return runServer(srv, "egg agent")
		},
	}
	cmd.Flags().StringVar(&addr, "listen", addr, "Address to listen on")
	return cmd
}

// runServer serves until SIGINT/SIGTERM, then drains for up to 10s.
func runServer(srv *http.Server, name string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Infof("%s listening", name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("shutting down %s", name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
