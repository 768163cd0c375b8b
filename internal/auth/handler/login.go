package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-auth/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles the local username/password form.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	h.finishLogin(c, "local", loginInput{
		email:    req.Email,
		password: req.Password,
	})
}

// Logout destroys the session. The user row is untouched and the
// response is idempotent.
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if err := h.gateway.Logout(c.Request.Context(), cookie.Value); err != nil {
			h.log.Error("logout failed to delete session")
		}
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}
