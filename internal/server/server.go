package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"debtledger/internal/config"
	"debtledger/internal/domain/auth"
	"debtledger/internal/domain/board"
	"debtledger/internal/domain/client"
	"debtledger/internal/domain/refresh"
	"debtledger/internal/middleware"
	"debtledger/internal/pkg/jwt"
	"debtledger/internal/pkg/validator"
)

const shutdownTimeout = 10 * time.Second

// Server wires the ledger service, its HTTP handlers and the refresh hub.
type Server struct {
	cfg *config.Config

	Engine  *gin.Engine
	Service *client.Service
	Hub     *refresh.Hub
	JWT     *jwt.Service
}

func New(cfg *config.Config, store *client.Store) (*Server, error) {
	if err := validator.RegisterSet("company", cfg.Companies); err != nil {
		return nil, fmt.Errorf("register company validator: %w", err)
	}

	j := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	service := client.NewService(store, client.Options{
		Location:      cfg.Location,
		DateLayout:    cfg.DateLayout,
		StrictAmounts: cfg.StrictAmounts,
		Companies:     cfg.Companies,
	})

	hub := refresh.NewHub()
	service.Subscribe(hub.Notify)
	service.Subscribe(func(_ context.Context, ev client.Event) {
		log.Printf("ledger_mutation action=%s name=%q viewers=%d", ev.Action, ev.Name, hub.Count())
	})

	authHandler := auth.NewHandler(auth.NewService(cfg.OwnerPasswordHash, j, cfg.JWTAccessTTL))
	clientHandler := client.NewHandler(service)
	boardHandler := board.NewHandler(board.NewBuilder(store, cfg.Companies, cfg.Currency))

	var check refresh.TokenCheck
	if cfg.AuthEnabled() {
		check = func(token string) error {
			claims, err := j.ValidateToken(token)
			if err != nil {
				return err
			}
			if claims.Role != jwt.RoleOwner {
				return errors.New("owner role required")
			}
			return nil
		}
	}
	refreshHandler := refresh.NewHandler(hub, check, cfg.CORSAllowedOrigins)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "debtledger",
		})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		refreshHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		if cfg.AuthEnabled() {
			protected.Use(middleware.JWTAuth(j), middleware.RequireRole(jwt.RoleOwner))
		} else {
			log.Printf("auth_disabled reason=%q", "OWNER_PASSWORD_HASH or JWT_SECRET not set")
		}
		{
			clientHandler.RegisterRoutes(protected)
			boardHandler.RegisterRoutes(protected)
		}
	}

	return &Server{
		cfg:     cfg,
		Engine:  r,
		Service: service,
		Hub:     hub,
		JWT:     j,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("debtledger api listening addr=%s env=%s", srv.Addr, s.cfg.AppEnv)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("shutdown")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
