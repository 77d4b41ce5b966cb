package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"teamtasks/common"
	"teamtasks/model"
	"teamtasks/response"
	"teamtasks/service"
)

// TaskRow pairs a task with its resolved assignee name for templates.
type TaskRow struct {
	model.Task
	AssigneeName string
}

// NoteView pairs a note with its author's display name.
type NoteView struct {
	model.Note
	AuthorName string
}

func (c *Controller) taskRows(tasks []model.Task, users []model.User) []TaskRow {
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		row := TaskRow{Task: t}
		if t.AssigneeID != nil {
			row.AssigneeName = names[*t.AssigneeID]
		}
		rows = append(rows, row)
	}
	return rows
}

// parseDate is the lenient filter-date parser: anything unparseable
// means "filter not applied".
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse(common.DateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

// Dashboard renders the filtered, ordered task list.
func (c *Controller) Dashboard(ctx *gin.Context) {
	filter := service.TaskFilter{
		AssigneeID: optionalUint(ctx.Query("assignee_id")),
		Status:     ctx.Query("status"),
		From:       parseDate(ctx.Query("from")),
		To:         parseDate(ctx.Query("to")),
	}

	tasks, err := c.Tasks.Dashboard(filter)
	if err != nil {
		fail(ctx, err, "")
		return
	}
	users, err := c.Users.List()
	if err != nil {
		fail(ctx, err, "")
		return
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title":       "Dashboard",
		"CurrentUser": currentUser(ctx),
		"Users":       users,
		"Tasks":       c.taskRows(tasks, users),
		"AssigneeID":  ctx.Query("assignee_id"),
		"Status":      ctx.Query("status"),
		"From":        ctx.Query("from"),
		"To":          ctx.Query("to"),
		"Today":       time.Now().Format(common.DateLayout),
	})
}

func (c *Controller) TaskNewPage(ctx *gin.Context) {
	users, err := c.Users.List()
	if err != nil {
		fail(ctx, err, "")
		return
	}
	jobs, err := c.Jobs.List("")
	if err != nil {
		fail(ctx, err, "")
		return
	}
	ctx.HTML(http.StatusOK, "task_new.html", gin.H{
		"Title":       "New Task",
		"CurrentUser": currentUser(ctx),
		"Users":       users,
		"Jobs":        jobs,
	})
}

func (c *Controller) TaskCreate(ctx *gin.Context) {
	title := ctx.PostForm("title")
	if title == "" {
		response.Error(ctx, http.StatusBadRequest, "Title is required")
		return
	}

	task, err := c.Tasks.Create(
		title,
		ctx.PostForm("description"),
		parseDate(ctx.PostForm("due_date")),
		optionalUint(ctx.PostForm("assignee_id")),
		optionalUint(ctx.PostForm("job_id")),
	)
	if err != nil {
		fail(ctx, err, "Task creation failed")
		return
	}
	ctx.Redirect(http.StatusFound, taskPath(task.ID))
}

func taskPath(id uint) string {
	return "/tasks/" + itoa(id)
}

func (c *Controller) TaskDetail(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	task, err := c.Tasks.Get(id)
	if err != nil {
		fail(ctx, err, "")
		return
	}

	users, err := c.Users.List()
	if err != nil {
		fail(ctx, err, "")
		return
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	notes, err := c.Tasks.Notes(id)
	if err != nil {
		fail(ctx, err, "")
		return
	}
	noteViews := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		noteViews = append(noteViews, NoteView{Note: n, AuthorName: names[n.AuthorID]})
	}

	assigneeName := ""
	if task.AssigneeID != nil {
		assigneeName = names[*task.AssigneeID]
	}

	var job *model.Job
	if task.JobID != nil {
		if j, err := c.Jobs.Get(*task.JobID); err == nil {
			job = j
		}
	}

	ctx.HTML(http.StatusOK, "task_detail.html", gin.H{
		"Title":        task.Title,
		"CurrentUser":  currentUser(ctx),
		"Task":         task,
		"AssigneeName": assigneeName,
		"Job":          job,
		"Users":        users,
		"Notes":        noteViews,
		"Statuses": []string{
			common.StatusTodo,
			common.StatusInProgress,
			common.StatusIssuedForReview,
			common.StatusDone,
		},
	})
}

func (c *Controller) TaskStatus(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Tasks.UpdateStatus(id, ctx.PostForm("status")); err != nil {
		fail(ctx, err, "Status update failed")
		return
	}
	ctx.Redirect(http.StatusFound, taskPath(id))
}

// TaskAssign is manager-only; an empty assignee_id clears the field.
func (c *Controller) TaskAssign(ctx *gin.Context) {
	if !currentUser(ctx).IsManager() {
		response.Error(ctx, http.StatusForbidden, "Only managers can change task assignments")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Tasks.Assign(id, optionalUint(ctx.PostForm("assignee_id"))); err != nil {
		fail(ctx, err, "Assignment failed")
		return
	}
	ctx.Redirect(http.StatusFound, taskPath(id))
}

func (c *Controller) TaskDelete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Tasks.Delete(id); err != nil {
		fail(ctx, err, "Deletion failed")
		return
	}
	response.Redirect(ctx, "/dashboard")
}

// TaskNoteCreate appends a note and returns just the rendered note card
// so the client can insert it without a reload.
func (c *Controller) TaskNoteCreate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	content := ctx.PostForm("content")
	if content == "" {
		response.Error(ctx, http.StatusBadRequest, "Note content is required")
		return
	}

	user := currentUser(ctx)
	note, err := c.Tasks.AddNote(id, user.ID, content)
	if err != nil {
		fail(ctx, err, "Note creation failed")
		return
	}

	ctx.HTML(http.StatusOK, "note_item", NoteView{Note: *note, AuthorName: user.FullName})
}
