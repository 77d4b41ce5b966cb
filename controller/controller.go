package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"teamtasks/common"
	"teamtasks/model"
	"teamtasks/response"
	"teamtasks/service"
)

// Controller holds the per-process dependencies; handlers are its
// methods so nothing lives in package globals.
type Controller struct {
	Cfg      *common.Config
	Users    *service.UserService
	Tasks    *service.TaskService
	Jobs     *service.JobService
	CSV      *service.CSVService
	Sessions common.SessionStore
}

func New(cfg *common.Config, db *gorm.DB, sessions common.SessionStore) *Controller {
	return &Controller{
		Cfg:      cfg,
		Users:    service.NewUserService(db, cfg.Auth.Cost),
		Tasks:    service.NewTaskService(db),
		Jobs:     service.NewJobService(db),
		CSV:      service.NewCSVService(db),
		Sessions: sessions,
	}
}

// currentUser returns the user the auth middleware resolved. Zero value
// on unauthenticated routes.
func currentUser(ctx *gin.Context) model.User {
	if v, ok := ctx.Get("user"); ok {
		if user, ok := v.(model.User); ok {
			return user
		}
	}
	return model.User{}
}

// fail maps service sentinel errors onto the HTTP error taxonomy.
func fail(ctx *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Error(ctx, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrTaskNotDone),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrPasswordMatch):
		response.Error(ctx, http.StatusBadRequest, err.Error())
	default:
		if msg == "" {
			msg = "Something went wrong"
		}
		response.Error(ctx, http.StatusInternalServerError, msg)
	}
}

// parseID reads a numeric path parameter.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		response.Error(ctx, http.StatusNotFound, "Not found")
		return 0, false
	}
	return uint(id), true
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// optionalUint parses a form/query value that may be empty.
func optionalUint(raw string) *uint {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}
