package handler

import (
	"shopadmin/internal/apperr"
	"shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service failure to its HTTP status and envelope through
// the apperr lookup, so no handler decides status codes on its own.
func respondError(c *gin.Context, err error) {
	e := apperr.From(err)
	c.JSON(e.Status(), response.FromAppError(e))
}
