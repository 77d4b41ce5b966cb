package router

import (
	"html/template"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"teamtasks/controller"
)

// funcMap holds the template helpers the pages rely on.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"fmtDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"fmtTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"statusLabel": func(s string) string {
			return strings.Title(strings.ReplaceAll(s, "_", " "))
		},
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}

// Register wires templates, static assets and the full route table.
// auth is the session middleware guarding everything but login,
// bootstrap, password recovery and the health probe.
func Register(eng *gin.Engine, ctrl *controller.Controller, auth gin.HandlerFunc) *gin.Engine {
	eng.SetFuncMap(funcMap())
	eng.LoadHTMLGlob(ctrl.Cfg.Http.TemplateGlob)
	eng.Static("/assets", ctrl.Cfg.Http.AssetsDir)

	eng.GET("/health", ctrl.Health)
	eng.GET("/favicon.ico", ctrl.Favicon)

	eng.GET("/login", ctrl.LoginPage)
	eng.POST("/login", ctrl.Login)
	eng.GET("/bootstrap", ctrl.BootstrapPage)
	eng.POST("/bootstrap", ctrl.Bootstrap)
	eng.GET("/forgot", ctrl.ForgotPage)
	eng.POST("/forgot", ctrl.Forgot)
	eng.GET("/reset/:token", ctrl.ResetPage)
	eng.POST("/reset/:token", ctrl.Reset)

	eng.GET("/", auth, ctrl.Root)
	eng.POST("/logout", auth, ctrl.Logout)
	eng.GET("/dashboard", auth, ctrl.Dashboard)

	eng.GET("/tasks/new", auth, ctrl.TaskNewPage)
	eng.POST("/tasks/new", auth, ctrl.TaskCreate)
	eng.GET("/tasks/:id", auth, ctrl.TaskDetail)
	eng.POST("/tasks/:id/status", auth, ctrl.TaskStatus)
	eng.POST("/tasks/:id/assign", auth, ctrl.TaskAssign)
	eng.POST("/tasks/:id/delete", auth, ctrl.TaskDelete)
	eng.POST("/tasks/:id/notes", auth, ctrl.TaskNoteCreate)

	eng.GET("/team", auth, ctrl.TeamPage)
	eng.POST("/team/new", auth, ctrl.TeamCreate)
	eng.POST("/team/:id/delete", auth, ctrl.TeamDelete)

	eng.GET("/jobs", auth, ctrl.JobList)
	eng.GET("/jobs/new", auth, ctrl.JobNewPage)
	eng.POST("/jobs/new", auth, ctrl.JobCreate)
	eng.GET("/jobs/:id", auth, ctrl.JobDetail)
	eng.POST("/jobs/:id/delete", auth, ctrl.JobDelete)
	eng.POST("/jobs/:id/image", auth, ctrl.JobImage)

	eng.POST("/import", auth, ctrl.Import)
	eng.GET("/export", auth, ctrl.Export)

	return eng
}
