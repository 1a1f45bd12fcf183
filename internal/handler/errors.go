package handler

import (
	"log"
	"net/http"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
)

// respondError translates an error kind into an HTTP response. Internal
// failures stay opaque to the caller and are logged server-side.
func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindResourceExhausted:
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case apperr.KindInvalidArgument:
		if fields := apperr.Fields(err); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "errors": fields})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
