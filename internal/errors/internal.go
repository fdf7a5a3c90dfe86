package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AbortWithInternal sends a 500 Internal Server Error response and aborts the request.
// Details should only be passed when debug mode is enabled.
func AbortWithInternal(c *gin.Context, message, details string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, NewAPIError(message, details))
}

// Internal sends a 500 Internal Server Error response without aborting.
func Internal(c *gin.Context, message, details string) {
	c.JSON(http.StatusInternalServerError, NewAPIError(message, details))
}
