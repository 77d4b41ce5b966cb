package controller

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"teamtasks/common"
	"teamtasks/logger"
	"teamtasks/model"
	"teamtasks/response"
)

// JobRow pairs a job with its task count for the list page.
type JobRow struct {
	model.Job
	TaskCount int64
}

func (c *Controller) JobList(ctx *gin.Context) {
	q := strings.TrimSpace(ctx.Query("q"))

	jobs, err := c.Jobs.List(q)
	if err != nil {
		fail(ctx, err, "")
		return
	}

	rows := make([]JobRow, 0, len(jobs))
	for _, j := range jobs {
		count, err := c.Jobs.TaskCount(j.ID)
		if err != nil {
			fail(ctx, err, "")
			return
		}
		rows = append(rows, JobRow{Job: j, TaskCount: count})
	}

	ctx.HTML(http.StatusOK, "jobs.html", gin.H{
		"Title":       "Jobs",
		"CurrentUser": currentUser(ctx),
		"Jobs":        rows,
		"Q":           q,
	})
}

func (c *Controller) JobNewPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "job_new.html", gin.H{
		"Title":       "New Job",
		"CurrentUser": currentUser(ctx),
	})
}

// saveJobImage stores an uploaded image under a generated filename and
// returns its URL path. Extensions outside the allow-list are coerced
// to .jpg.
func (c *Controller) saveJobImage(ctx *gin.Context) (string, error) {
	file, err := ctx.FormFile("image")
	if err != nil || file == nil || file.Filename == "" {
		return "", nil // no upload
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !common.ImageExtensions[ext] {
		ext = ".jpg"
	}
	name := common.RandomToken() + ext

	dir := filepath.Join(c.Cfg.Http.AssetsDir, "images", "jobs")
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err = ctx.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return "/assets/images/jobs/" + name, nil
}

func (c *Controller) JobCreate(ctx *gin.Context) {
	title := ctx.PostForm("title")
	if title == "" {
		response.Error(ctx, http.StatusBadRequest, "Title is required")
		return
	}

	imagePath, err := c.saveJobImage(ctx)
	if err != nil {
		logger.Errorf("job image save error: %v", err)
		fail(ctx, err, "Image upload failed")
		return
	}

	if _, err = c.Jobs.Create(title, imagePath); err != nil {
		fail(ctx, err, "Job creation failed")
		return
	}
	response.Redirect(ctx, "/jobs")
}

func (c *Controller) JobDetail(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	job, err := c.Jobs.Get(id)
	if err != nil {
		fail(ctx, err, "")
		return
	}
	tasks, err := c.Jobs.Tasks(id)
	if err != nil {
		fail(ctx, err, "")
		return
	}
	users, err := c.Users.List()
	if err != nil {
		fail(ctx, err, "")
		return
	}

	ctx.HTML(http.StatusOK, "job_detail.html", gin.H{
		"Title":       job.Title,
		"CurrentUser": currentUser(ctx),
		"Job":         job,
		"Tasks":       c.taskRows(tasks, users),
	})
}

func (c *Controller) JobDelete(ctx *gin.Context) {
	if !currentUser(ctx).IsManager() {
		response.Error(ctx, http.StatusForbidden, "Only managers can delete jobs")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Jobs.Delete(id); err != nil {
		fail(ctx, err, "Job deletion failed")
		return
	}
	response.Redirect(ctx, "/jobs")
}

// JobImage replaces a job's image; the upload must be an image content
// type.
func (c *Controller) JobImage(ctx *gin.Context) {
	if !currentUser(ctx).IsManager() {
		response.Error(ctx, http.StatusForbidden, "Only managers can update job images")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if _, err := c.Jobs.Get(id); err != nil {
		fail(ctx, err, "")
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil || file == nil || file.Filename == "" {
		response.Error(ctx, http.StatusBadRequest, "File must be an image")
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		response.Error(ctx, http.StatusBadRequest, "File must be an image")
		return
	}

	imagePath, err := c.saveJobImage(ctx)
	if err != nil || imagePath == "" {
		logger.Errorf("job image save error: %v", err)
		fail(ctx, err, "Image upload failed")
		return
	}

	if err = c.Jobs.SetImage(id, imagePath); err != nil {
		fail(ctx, err, "Image update failed")
		return
	}
	ctx.Redirect(http.StatusFound, "/jobs/"+itoa(id))
}
