package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teamtasks/common"
	"teamtasks/logger"
	"teamtasks/response"
	"teamtasks/service"
)

// Root sends signed-in users to the dashboard, everyone else to login.
// Runs behind the auth middleware, so reaching it means signed in.
func (c *Controller) Root(ctx *gin.Context) {
	response.Redirect(ctx, "/dashboard")
}

func (c *Controller) LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login verifies credentials and establishes the session. Failures
// redirect back to /login with no distinguishing error.
func (c *Controller) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	user, err := c.Users.Authenticate(username, password)
	if err != nil {
		response.Redirect(ctx, "/login")
		return
	}

	token, err := common.ReleaseToken(c.Cfg, *user)
	if err != nil {
		logger.Errorf("token generate error: %v", err)
		fail(ctx, err, "Login failed")
		return
	}

	ttl := time.Duration(c.Cfg.Http.SessionExpire) * time.Second
	if err = c.Sessions.Set(ctx, user.ID, token, ttl); err != nil {
		logger.Errorf("session store error: %v", err)
		fail(ctx, err, "Login failed")
		return
	}

	ctx.SetCookie(common.SessionCookie, token, c.Cfg.Http.SessionExpire, "/", "", false, true)
	response.Redirect(ctx, "/dashboard")
}

func (c *Controller) Logout(ctx *gin.Context) {
	user := currentUser(ctx)
	if err := c.Sessions.Del(ctx, user.ID); err != nil {
		logger.Errorf("session clear error: %v", err)
	}
	ctx.SetCookie(common.SessionCookie, "", -1, "/", "", false, true)
	response.Redirect(ctx, "/login")
}

// BootstrapPage renders the first-manager form, but only while no user
// exists.
func (c *Controller) BootstrapPage(ctx *gin.Context) {
	exists, err := c.Users.HasUsers()
	if err != nil {
		fail(ctx, err, "")
		return
	}
	if exists {
		response.Redirect(ctx, "/login")
		return
	}
	ctx.HTML(http.StatusOK, "bootstrap.html", gin.H{"Title": "Bootstrap"})
}

func (c *Controller) Bootstrap(ctx *gin.Context) {
	fullName := ctx.PostForm("full_name")
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	if _, err := c.Users.Bootstrap(fullName, username, password); err != nil {
		if err == service.ErrBootstrapClosed {
			response.Redirect(ctx, "/login")
			return
		}
		fail(ctx, err, "Bootstrap failed")
		return
	}
	response.Redirect(ctx, "/login")
}

func (c *Controller) ForgotPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "forgot.html", gin.H{"Title": "Forgot password"})
}

// Forgot always renders the success view; the reset link only appears
// when the account exists, and the page looks the same either way from
// the outside.
func (c *Controller) Forgot(ctx *gin.Context) {
	username := ctx.PostForm("username")

	reset, err := c.Users.CreateReset(username)
	if err != nil {
		fail(ctx, err, "")
		return
	}

	resetURL := ""
	if reset != nil {
		scheme := "http"
		if ctx.Request.TLS != nil {
			scheme = "https"
		}
		resetURL = fmt.Sprintf("%s://%s/reset/%s", scheme, ctx.Request.Host, reset.Token)
	}

	ctx.HTML(http.StatusOK, "forgot.html", gin.H{
		"Title":    "Forgot password",
		"Sent":     true,
		"ResetURL": resetURL,
	})
}

func (c *Controller) ResetPage(ctx *gin.Context) {
	token := ctx.Param("token")
	if _, err := c.Users.ValidateReset(token); err != nil {
		ctx.HTML(http.StatusOK, "reset.html", gin.H{
			"Title": "Reset password",
			"Error": "Invalid or expired reset link.",
		})
		return
	}
	ctx.HTML(http.StatusOK, "reset.html", gin.H{"Title": "Reset password", "Token": token})
}

func (c *Controller) Reset(ctx *gin.Context) {
	token := ctx.Param("token")
	password := ctx.PostForm("password")
	password2 := ctx.PostForm("password2")

	if err := c.Users.CompleteReset(token, password, password2); err != nil {
		msg := "Invalid or expired reset link."
		if err == service.ErrPasswordMatch {
			msg = "Passwords do not match."
		}
		ctx.HTML(http.StatusOK, "reset.html", gin.H{
			"Title": "Reset password",
			"Token": token,
			"Error": msg,
		})
		return
	}
	response.Redirect(ctx, "/login")
}
