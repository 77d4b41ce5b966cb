package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the unauthenticated liveness probe.
func (c *Controller) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// Favicon points browsers at the static asset.
func (c *Controller) Favicon(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/assets/images/favicon.ico")
}
