package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"library-auth/internal/auth/credentials"
	"library-auth/internal/auth/gateway"
	"library-auth/internal/auth/handler"
	"library-auth/internal/auth/mapper"
	"library-auth/internal/auth/provider"
	"library-auth/internal/auth/provider/google"
	"library-auth/internal/auth/provider/kakao"
	"library-auth/internal/auth/resolver"
	"library-auth/internal/auth/strategy"
	"library-auth/internal/config"
	"library-auth/internal/metrics"
	"library-auth/internal/middleware"
	"library-auth/internal/session"
	"library-auth/internal/user"
)

func setupHTTP(ctx context.Context, cfg config.Config, log *zap.Logger) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Core
	// ----------------------------

	users := user.NewPostgresStore(infra.DB)
	creds := credentials.NewService(users, nil)
	identityResolver := resolver.New(users, nil)

	strategies := strategy.NewRegistry(
		strategy.NewLocal(creds, identityResolver),
		strategy.NewProvider("google", mapper.Google{}, identityResolver, log),
		strategy.NewProvider("kakao", mapper.Kakao{}, identityResolver, log),
	)

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	codec := session.NewCodec(sessionStore, users, cfg.SessionTTL)

	authGateway := gateway.New(strategies, codec, log)

	// ----------------------------
	// OAuth exchange collaborators
	// ----------------------------

	var oauthProviders []provider.OAuthProvider

	if cfg.GoogleClientID != "" {
		googleProvider, err := google.New(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			log,
		)
		if err != nil {
			return nil, nil, err
		}
		oauthProviders = append(oauthProviders, googleProvider)
	} else {
		log.Warn("google oauth not configured; provider disabled")
	}

	if cfg.KakaoClientID != "" {
		kakaoProvider, err := kakao.New(
			cfg.KakaoClientID,
			cfg.KakaoClientSecret,
			cfg.KakaoRedirectURL,
			log,
		)
		if err != nil {
			return nil, nil, err
		}
		oauthProviders = append(oauthProviders, kakaoProvider)
	} else {
		log.Warn("kakao oauth not configured; provider disabled")
	}

	providers := provider.NewRegistry(oauthProviders...)

	// ----------------------------
	// HTTP surface
	// ----------------------------

	collector := metrics.NewCollector()

	loginLimiter := middleware.NewIPRateLimiter(
		rate.Limit(float64(cfg.LoginRatePerMinute)/60.0),
		cfg.LoginRateBurst,
	)

	authHandler := handler.New(
		authGateway,
		creds,
		providers,
		collector,
		cfg.SessionTTL,
		log,
	)

	authMiddleware := middleware.NewAuthMiddleware(authGateway, collector)

	router := gin.New()
	router.Use(gin.Recovery())

	authHandler.RegisterRoutes(router, middleware.GinRateLimit(loginLimiter))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(collector.Handler()))

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		u, ok := middleware.UserFromContext(c.Request.Context())
		if !ok {
			c.JSON(401, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(200, gin.H{
			"id":           u.ID,
			"email":        u.Email,
			"display_name": u.DisplayName,
			"avatar_url":   u.AvatarURL,
			"source":       string(u.Source),
		})
	})

	cleanup := func() error {
		loginLimiter.Stop()
		return infra.DB.Close()
	}

	return router, cleanup, nil
}
