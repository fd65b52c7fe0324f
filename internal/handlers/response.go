package handlers

import (
	"errors"
	"net/http"

	"bookreview/internal/apperr"

	"github.com/gin-gonic/gin"
)

const msgServerError = "Server Error"

// respondError is the single sink for every failure a handler sees. Expected
// failures carry their status and message; anything else is logged and
// flattened to a 500 without leaking internals.
func (h *Handler) respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		c.JSON(e.Status(), gin.H{"success": false, "message": e.Message})
		return
	}
	if h.log != nil {
		h.log.Errorw("request_failed", "err", err, "method", c.Request.Method, "path", c.Request.URL.Path)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msgServerError})
}

// respondData writes the success envelope around a single payload.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// bindJSON binds the request body into dst, converting a malformed body into
// a validation failure.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.New(apperr.ValidationFailed, "Invalid request body")
	}
	return nil
}
