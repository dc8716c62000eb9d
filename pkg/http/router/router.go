package router

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	_ "net/http/pprof"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/lintang-b-s/arterial/pkg/concurrent"
	_ "github.com/lintang-b-s/arterial/pkg/http/docs"
	"github.com/lintang-b-s/arterial/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/arterial/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/arterial/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Services. usecases behind the http and websocket api
type Services struct {
	Routing   controllers.RoutingService
	Traffic   controllers.TrafficService
	Segments  controllers.SegmentService
	Locations controllers.LocationService
}

type Options struct {
	UseRateLimit   bool
	RateLimitRPS   float64
	RateLimitBurst int
}

type API struct {
	log    *zap.Logger
	hub    *controllers.Hub
	poller netpoll.Poller
	pool   *concurrent.Pool
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			arterial API
//	@version		1.0
//	@description	traffic aware route advisory over the arterial road network of a city.

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost:6060
// @BasePath	/api

// Handler. router with every api route behind the middleware chain
func (api *API) Handler(services Services, opts Options) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", REQUEST_ID_HEADER},
		ExposedHeaders:   []string{"Link", "Location", REQUEST_ID_HEADER},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	controllers.NewRoutingAPI(services.Routing, api.log).Routes(group)
	controllers.NewTrafficAPI(services.Traffic, api.log).Routes(group)
	controllers.NewSegmentAPI(services.Segments, api.log).Routes(group)
	controllers.NewLocationAPI(services.Locations, api.log).Routes(group)

	mwChain := []alice.Constructor{corsHandler.Handler, api.recoverPanic, RealIP, Heartbeat("healthz"),
		Labels, Logger(api.log)}
	if opts.UseRateLimit {
		mwChain = append(mwChain, Limit(opts.RateLimitRPS, opts.RateLimitBurst))
	}
	mwChain = append(mwChain, EnforceJSONHandler, Compress)

	return alice.New(mwChain...).Then(router)
}

// Run. serves the http api, the live prediction websocket and the websocket proxy until ctx is
// done or one of them fails.
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	services Services,
	opts Options,
) error {
	api.log.Info("Run httprouter API")

	var (
		errChan      = make(chan error, 1)
		errProxyChan = make(chan error, 1)
		wsServer     *http.Server
	)

	go func() {
		if err := api.handleWebsocket(ctx, config, services.Traffic); err != nil {
			errChan <- err
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", api.upstream("live prediction", "tcp", "localhost:"+strconv.Itoa(config.WebsocketPort)))
	wsServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", config.ProxyPort),
		Handler: mux,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}
	go func() {
		api.log.Info(fmt.Sprintf("WebSocket proxy running on port %d", config.ProxyPort))
		if err := wsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errProxyChan <- err
		}
	}()

	srv := http_server.New(ctx, api.Handler(services, opts), config, false)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = wsServer.Shutdown(shutdownCtx)
	}

	select {
	case err := <-errChan:
		api.log.Error("Websocket error, shutting down server", zap.Error(err))
		shutdown()
		return err
	case err := <-errProxyChan:
		api.log.Error("Websocket proxy error, shutting down server", zap.Error(err))
		shutdown()
		return err
	case err := <-serverErr:
		api.log.Info("HTTP server stopped", zap.Error(err))
		shutdown()
		return err
	case <-ctx.Done():
		api.log.Info("Context canceled, shutting down server")
		shutdown()
		return nil
	}
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
