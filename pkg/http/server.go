package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/arterial/pkg/http/router"
	http_server "github.com/lintang-b-s/arterial/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log  *zap.Logger
	g    errgroup.Group
	done chan struct{}
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log, done: make(chan struct{})}
}

// Use. starts the api in the background with its configuration read from viper.
// it stops when ctx is done.
func (s *Server) Use(
	ctx context.Context,
	services http_router.Services,
) *Server {
	config := http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		ProxyPort:     viper.GetInt("PROXY_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
	}
	opts := http_router.Options{
		UseRateLimit:   viper.GetBool("USE_RATE_LIMIT"),
		RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
	}

	api := http_router.NewAPI(s.Log)

	s.g.Go(func() error {
		defer close(s.done)
		err := api.Run(ctx, config, services, opts)
		if err != nil {
			s.Log.Error("api stopped with error", zap.Error(err))
		}
		return err
	})

	return s
}

// Done. closed once the api has stopped
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) Wait() error {
	return s.g.Wait()
}

// GracefulShutdown. blocks until SIGINT/SIGTERM, or until done is closed (nil signal)
func GracefulShutdown(done <-chan struct{}) os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		return sig
	case <-done:
		return nil
	}
}
