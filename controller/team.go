package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"teamtasks/common"
	"teamtasks/response"
)

func (c *Controller) TeamPage(ctx *gin.Context) {
	users, err := c.Users.List()
	if err != nil {
		fail(ctx, err, "")
		return
	}
	ctx.HTML(http.StatusOK, "team.html", gin.H{
		"Title":       "Team",
		"CurrentUser": currentUser(ctx),
		"Users":       users,
	})
}

// TeamCreate is manager-only; duplicate usernames are surfaced here,
// unlike at login.
func (c *Controller) TeamCreate(ctx *gin.Context) {
	if !currentUser(ctx).IsManager() {
		response.Error(ctx, http.StatusForbidden, "Only managers can add users")
		return
	}

	role := ctx.DefaultPostForm("role", common.RoleMember)
	if role != common.RoleManager && role != common.RoleMember {
		response.Error(ctx, http.StatusBadRequest, "Invalid role")
		return
	}

	_, err := c.Users.Create(
		ctx.PostForm("full_name"),
		ctx.PostForm("username"),
		ctx.PostForm("password"),
		role,
	)
	if err != nil {
		fail(ctx, err, "User creation failed")
		return
	}
	response.Redirect(ctx, "/team")
}

// TeamDelete is manager-only and cascades per the ownership rules;
// self-deletion is rejected.
func (c *Controller) TeamDelete(ctx *gin.Context) {
	actor := currentUser(ctx)
	if !actor.IsManager() {
		response.Error(ctx, http.StatusForbidden, "Only managers can delete users")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Users.Delete(actor.ID, id); err != nil {
		fail(ctx, err, "User deletion failed")
		return
	}
	response.Redirect(ctx, "/team")
}
