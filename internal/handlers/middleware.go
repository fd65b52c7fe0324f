package handlers

import (
	"strings"

	"bookreview/internal/apperr"
	"bookreview/internal/models"

	"github.com/gin-gonic/gin"
)

const ctxUserKey = "currentUser"

const msgNotAuthorized = "Not authorized to access this route"

// authMiddleware resolves the bearer token to a user and aborts with 401 when
// the header is absent, malformed, or the token does not verify.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		h.abortUnauthorized(c)
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		h.abortUnauthorized(c)
		return
	}

	user, err := h.services.VerifyToken(c.Request.Context(), parts[1])
	if err != nil {
		c.Abort()
		h.respondError(c, err)
		return
	}

	c.Set(ctxUserKey, user)
	c.Next()
}

func (h *Handler) abortUnauthorized(c *gin.Context) {
	c.Abort()
	h.respondError(c, apperr.New(apperr.Unauthorized, msgNotAuthorized))
}

// currentUser returns the user stored by authMiddleware. Only callable on
// routes behind the middleware.
func currentUser(c *gin.Context) *models.User {
	u, _ := c.Get(ctxUserKey)
	user, _ := u.(*models.User)
	return user
}
