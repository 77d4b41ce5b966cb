package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"teamtasks/common"
	"teamtasks/model"
)

// Auth resolves the session cookie to a user row. Anything short of a
// valid cookie whose token matches the server-side session redirects to
// the login page with no detail.
func Auth(cfg *common.Config, db *gorm.DB, sessions common.SessionStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(common.SessionCookie)
		if err != nil || tokenString == "" {
			redirectLogin(ctx)
			return
		}

		token, claims, err := common.ParseToken(cfg, tokenString)
		if err != nil || !token.Valid {
			redirectLogin(ctx)
			return
		}

		var user model.User
		if err = db.First(&user, claims.UserID).Error; err != nil {
			redirectLogin(ctx)
			return
		}

		stored, err := sessions.Get(ctx, user.ID)
		if err != nil || stored != tokenString {
			redirectLogin(ctx)
			return
		}

		ctx.Set("user", user)
		ctx.Next()
	}
}

func redirectLogin(ctx *gin.Context) {
	ctx.Redirect(http.StatusFound, "/login")
	ctx.Abort()
}
