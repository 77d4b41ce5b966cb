package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"teamtasks/logger"
	"teamtasks/response"
)

// Export streams all tasks as the simplified CSV attachment.
func (c *Controller) Export(ctx *gin.Context) {
	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename=tasks.csv`)

	if err := c.CSV.Export(ctx.Writer); err != nil {
		logger.Errorf("csv export error: %v", err)
	}
}

// Import accepts a multipart CSV upload and stages all parseable rows.
func (c *Controller) Import(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil || file == nil {
		response.Error(ctx, http.StatusBadRequest, "Please upload a .csv file")
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		response.Error(ctx, http.StatusBadRequest, "Please upload a .csv file")
		return
	}

	src, err := file.Open()
	if err != nil {
		fail(ctx, err, "Import failed")
		return
	}
	defer src.Close()

	count, err := c.CSV.Import(src)
	if err != nil {
		fail(ctx, err, "Import failed")
		return
	}
	logger.Infof("csv import: %d tasks created", count)

	response.Redirect(ctx, "/dashboard")
}
