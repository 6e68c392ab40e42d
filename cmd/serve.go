package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Eursukkul/roomescape-service/config"
	"github.com/Eursukkul/roomescape-service/internal/auth"
	"github.com/Eursukkul/roomescape-service/internal/consumer"
	"github.com/Eursukkul/roomescape-service/internal/handler"
	"github.com/Eursukkul/roomescape-service/internal/metrics"
	"github.com/Eursukkul/roomescape-service/internal/middleware"
	"github.com/Eursukkul/roomescape-service/internal/repository"
	"github.com/Eursukkul/roomescape-service/internal/service"
	"github.com/Eursukkul/roomescape-service/pkg/cache"
	"github.com/Eursukkul/roomescape-service/pkg/database"
	"github.com/Eursukkul/roomescape-service/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const rankingCachePrefix = "roomescape:ranking"

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reservation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := database.NewPostgresDB(cfg.DSN())
			if err != nil {
				return err
			}
			if migrateUp {
				if err := database.Migrate(db); err != nil {
					return err
				}
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			m := metrics.New(reg)

			// Repositories
			stores := service.Stores{
				Tx:           repository.NewTxManager(db),
				Members:      repository.NewMemberRepository(db),
				Times:        repository.NewTimeRepository(db),
				Themes:       repository.NewThemeRepository(db),
				Details:      repository.NewDetailRepository(db),
				Reservations: repository.NewReservationRepository(db),
				Waitings:     repository.NewWaitingRepository(db),
			}

			opts := []service.Option{service.WithMetrics(m), service.WithLocation(cfg.Location)}

			// Redis: ranking cache, cleared whenever a reservation changes
			var rankingCache service.RankingCache
			if cfg.RedisAddr != "" {
				rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
				if err != nil {
					return err
				}
				defer rdb.Close()
				jsonCache := cache.NewJSONCache(rdb, rankingCachePrefix, cfg.RankingCacheTTL)
				rankingCache = jsonCache
				opts = append(opts, service.WithRankingInvalidator(jsonCache))
			}

			// RabbitMQ: outbound reservation events, inbound catalog sync
			if cfg.RabbitURL != "" {
				pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
				if err != nil {
					return err
				}
				defer pub.Close()
				opts = append(opts, service.WithPublisher(pub))

				mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
				if err != nil {
					return err
				}
				defer mqConsumer.Close()

				msgs, err := mqConsumer.Consume()
				if err != nil {
					return err
				}
				consumer.NewCatalogConsumer(stores.Themes, stores.Times, m).Start(ctx, msgs)
			} else {
				log.Println("[Serve] RABBITMQ_URL not set, events and catalog sync disabled")
			}

			// Services
			tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.AccessTokenTTLMin)*time.Minute)
			reservationSvc := service.NewReservationService(stores, opts...)
			waitingSvc := service.NewWaitingService(stores, opts...)
			themeSvc := service.NewThemeService(stores.Themes, stores.Times, rankingCache,
				service.RankingConfig{WindowDays: cfg.RankingWindowDays, Limit: cfg.RankingLimit}, opts...)
			memberSvc := service.NewMemberService(stores.Members, tokens)

			e := newEcho(reg)
			handler.NewThemeHandler(themeSvc).RegisterRoutes(e)
			handler.NewMemberHandler(memberSvc).RegisterRoutes(e)
			handler.NewReservationHandler(reservationSvc, waitingSvc).RegisterRoutes(e, middleware.MemberAuth(tokens))

			return run(ctx, e, ":"+cfg.ServerPort)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}

func newEcho(reg *prometheus.Registry) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "roomescape"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return e
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Serve] listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[Serve] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
