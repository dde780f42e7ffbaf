package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yosilia/dm-touch-backend/internal/auth"
	"github.com/yosilia/dm-touch-backend/internal/config"
	"github.com/yosilia/dm-touch-backend/internal/features/admin"
	"github.com/yosilia/dm-touch-backend/internal/features/category"
	"github.com/yosilia/dm-touch-backend/internal/features/designrequest"
	"github.com/yosilia/dm-touch-backend/internal/features/order"
	"github.com/yosilia/dm-touch-backend/internal/features/product"
	"github.com/yosilia/dm-touch-backend/internal/features/query"
	"github.com/yosilia/dm-touch-backend/internal/features/user"
	"github.com/yosilia/dm-touch-backend/internal/mailer"
	"github.com/yosilia/dm-touch-backend/internal/middlewares"
	"github.com/yosilia/dm-touch-backend/internal/realtime"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Cfg          *config.Config
	DB           *mongo.Database
	TokenManager *auth.TokenService
}

type server struct {
	*ServerConfig

	publisher realtime.Publisher
	engine    *realtime.Engine // nil when the Redis relay is in use
	srv       *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	return &server{
		ServerConfig: serverConfig,
	}
}

func (s *server) Run() {
	router := chi.NewRouter()

	router.Use(chimiddleware.StripSlashes)
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)

	s.prep()

	router.Mount("/api/v1", s.v1Router())

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Cfg.ServerAddr),
		Handler: router,
	}

	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			logrus.WithField("addr", s.Cfg.ServerAddr).Info("server started")

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done()
			logrus.Info("server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				20*time.Second,
			)
			defer cancel()

			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed to shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		logrus.Fatal(err.Error())
	}

	if s.engine != nil {
		s.engine.Close()
	}

	logrus.Info("server has been gracefully shutdown")
}

// prep wires the realtime publisher: the Redis relay when an address is
// configured, the in-process broker otherwise.
func (s *server) prep() {
	if s.Cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: s.Cfg.RedisAddr,
		})
		s.publisher = realtime.NewRedisRelay(client)
		return
	}

	s.engine = realtime.NewEngine()
	s.publisher = s.engine
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	middleware := middlewares.NewMiddleware(s.TokenManager)

	var orderMailer mailer.Mailer = mailer.NewNoopMailer()
	if s.Cfg.SMTPHost != "" {
		orderMailer = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host: s.Cfg.SMTPHost,
			Port: s.Cfg.SMTPPort,
			User: s.Cfg.SMTPUser,
			Pass: s.Cfg.SMTPPass,
			From: s.Cfg.SMTPFrom,
		})
	}

	// admin membership lookups
	adminStore := admin.NewStore(s.DB)

	// user feature
	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userStore, err := user.NewStore(startupCtx, s.DB)
	if err != nil {
		logrus.WithError(err).Fatal("failed to prepare user store")
	}
	userService := user.NewService(userStore, adminStore, s.TokenManager)
	userHandler := user.NewHandler(userService, middleware, s.Cfg.AccessTokenExpiryInSecs)
	userHandler.RegisterRoutes(r)

	// category feature
	categoryStore := category.NewStore(s.DB)
	categoryService := category.NewService(categoryStore)
	categoryHandler := category.NewHandler(categoryService, middleware)
	categoryHandler.RegisterRoutes(r)

	// product feature
	productStore := product.NewStore(s.DB)
	productService := product.NewService(productStore)
	productHandler := product.NewHandler(productService, middleware)
	productHandler.RegisterRoutes(r)

	// order feature
	orderStore := order.NewStore(s.DB)
	orderService := order.NewService(&order.ServiceConfig{
		Store:            orderStore,
		Products:         productService,
		Gateway:          order.NewStripeGateway(s.Cfg.StripeSecretKey, s.Cfg.PublicURL),
		Publisher:        s.publisher,
		Mailer:           orderMailer,
		TaxRate:          s.Cfg.TaxRate,
		DeliveryFeePence: s.Cfg.DeliveryFeePence,
	})
	orderHandler := order.NewHandler(orderService, middleware, s.Cfg.StripeWebhookSecret)
	orderHandler.RegisterRoutes(r)

	// design request feature
	designRequestStore := designrequest.NewStore(s.DB)
	designRequestService := designrequest.NewService(
		designRequestStore,
		s.publisher,
		s.Cfg.AppointmentCapacity,
	)
	designRequestHandler := designrequest.NewHandler(designRequestService, middleware)
	designRequestHandler.RegisterRoutes(r)

	// general query feature
	queryStore := query.NewStore(s.DB)
	queryService := query.NewService(queryStore)
	queryHandler := query.NewHandler(queryService, middleware)
	queryHandler.RegisterRoutes(r)

	return r
}
