package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Redirect is a plain 302, the app's answer for every successful form post.
func Redirect(ctx *gin.Context, location string) {
	ctx.Redirect(http.StatusFound, location)
}

// Error renders the error page with the given status and stops the chain.
func Error(ctx *gin.Context, code int, msg string) {
	ctx.HTML(code, "error.html", gin.H{
		"Title":   "Error",
		"Code":    code,
		"Message": msg,
	})
	ctx.Abort()
}
