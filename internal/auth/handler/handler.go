package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"library-auth/internal/auth/credentials"
	"library-auth/internal/auth/gateway"
	"library-auth/internal/auth/provider"
	"library-auth/internal/auth/strategy"
	"library-auth/internal/metrics"
	"library-auth/internal/session"
	"library-auth/internal/user"
)

// Handler translates HTTP requests into gateway calls and outcomes
// back into status codes. It is the only layer that touches cookies.
type Handler struct {
	gateway    *gateway.Gateway
	creds      *credentials.Service
	providers  *provider.Registry
	metrics    *metrics.Collector
	sessionTTL time.Duration
	log        *zap.Logger
}

func New(
	gw *gateway.Gateway,
	creds *credentials.Service,
	providers *provider.Registry,
	collector *metrics.Collector,
	sessionTTL time.Duration,
	log *zap.Logger,
) *Handler {
	return &Handler{
		gateway:    gw,
		creds:      creds,
		providers:  providers,
		metrics:    collector,
		sessionTTL: sessionTTL,
		log:        log,
	}
}

// RegisterRoutes mounts the public auth surface. limit guards the
// credential endpoints against password guessing.
func (h *Handler) RegisterRoutes(r *gin.Engine, limit gin.HandlerFunc) {
	r.POST("/auth/register", limit, h.Register)
	r.POST("/auth/login", limit, h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/oauth/callback/:provider", h.oauthCallback)
}

func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) oauthCallback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		h.log.Warn("oauth callback returned error",
			zap.String("provider", providerName),
			zap.String("error", errParam),
			zap.String("desc", c.Query("error_description")),
		)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.log.Error("oauth callback missing code and error")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	raw, err := p.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	h.finishLogin(c, providerName, rawInput(raw))
}

// finishLogin funnels every login path through the gateway and maps
// the outcome onto the response.
func (h *Handler) finishLogin(c *gin.Context, method string, in loginInput) {
	out, token, err := h.gateway.Login(c.Request.Context(), method, in.strategyInput())
	if err != nil {
		h.metrics.RecordLogin(method, "error")
		h.log.Error("login failed", zap.String("method", method), zap.Error(err))
		if errors.Is(err, user.ErrStoreUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication unavailable"})
		return
	}

	h.metrics.RecordLogin(method, out.Kind())

	switch {
	case out.IsAuthenticated():
		h.setSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{
			"status": "authenticated",
			"user":   userResponse(out.User),
		})

	case out.IsConflict():
		c.JSON(http.StatusConflict, gin.H{
			"error":            "account exists with a different sign-in method",
			"existing_source":  string(out.Conflict.Existing),
			"attempted_source": string(out.Conflict.Attempted),
		})

	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	session.SetCookie(
		c.Writer,
		token,
		time.Now().Add(h.sessionTTL),
		session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		},
	)
}

type userPayload struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Source        string    `json:"source"`
	LastVisitedAt time.Time `json:"last_visited_at"`
}

// userResponse strips server-only fields (the password hash above all).
func userResponse(u *user.User) userPayload {
	return userPayload{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		AvatarURL:     u.AvatarURL,
		Source:        string(u.Source),
		LastVisitedAt: u.LastVisitedAt,
	}
}

// loginInput adapts the two credential shapes onto strategy.Input.
type loginInput struct {
	email      string
	password   string
	rawProfile map[string]any
}

func rawInput(raw map[string]any) loginInput {
	return loginInput{rawProfile: raw}
}

func (in loginInput) strategyInput() strategy.Input {
	return strategy.Input{
		Email:      in.email,
		Password:   in.password,
		RawProfile: in.rawProfile,
	}
}
