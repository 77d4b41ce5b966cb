package service

import (
	"errors"
	"testing"
	"time"

	"teamtasks/common"
	"teamtasks/model"
)

func TestDeleteRequiresDoneStatus(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	task := mustTask(t, tasks, "ship it", nil, nil, nil)
	if _, err := tasks.AddNote(task.ID, 1, "first note"); err != nil {
		t.Fatalf("add note: %v", err)
	}

	for _, status := range []string{common.StatusTodo, common.StatusInProgress, common.StatusIssuedForReview} {
		if err := tasks.UpdateStatus(task.ID, status); err != nil {
			t.Fatalf("set status %s: %v", status, err)
		}
		if err := tasks.Delete(task.ID); !errors.Is(err, ErrTaskNotDone) {
			t.Fatalf("delete in %s: got %v, want ErrTaskNotDone", status, err)
		}
	}
	if got := countRows(t, db, &model.Task{}); got != 1 {
		t.Fatalf("task count after rejected deletes = %d, want 1", got)
	}

	if err := tasks.UpdateStatus(task.ID, common.StatusDone); err != nil {
		t.Fatalf("set done: %v", err)
	}
	if err := tasks.Delete(task.ID); err != nil {
		t.Fatalf("delete done task: %v", err)
	}
	if got := countRows(t, db, &model.Task{}); got != 0 {
		t.Fatalf("task count = %d, want 0", got)
	}
	if got := countRows(t, db, &model.Note{}); got != 0 {
		t.Fatalf("orphaned notes = %d, want 0", got)
	}
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	task := mustTask(t, tasks, "task", nil, nil, nil)
	if err := tasks.UpdateStatus(task.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}

	got, err := tasks.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != common.StatusTodo {
		t.Fatalf("status changed to %q after rejected update", got.Status)
	}
}

func TestDashboardOrdering(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	mustTask(t, tasks, "later", datePtr(t, "2025-01-10"), nil, nil)
	mustTask(t, tasks, "sooner", datePtr(t, "2025-01-05"), nil, nil)
	mustTask(t, tasks, "undated", nil, nil, nil)

	got, err := tasks.Dashboard(TaskFilter{})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	want := []string{"sooner", "later", "undated"}
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Fatalf("position %d = %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestDashboardUndatedTiesNewestUpdateFirst(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	older := mustTask(t, tasks, "older", nil, nil, nil)
	newer := mustTask(t, tasks, "newer", nil, nil, nil)

	// force distinct updated_at values
	past := time.Now().Add(-time.Hour)
	if err := db.Model(&model.Task{}).Where("id = ?", older.ID).UpdateColumn("updated_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	got, err := tasks.Dashboard(TaskFilter{})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Fatalf("order = [%s %s], want [newer older]", got[0].Title, got[1].Title)
	}
}

func TestDashboardFilters(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)
	tasks := NewTaskService(db)

	alice := mustUser(t, users, "Alice", "alice", "pw", common.RoleMember)
	bob := mustUser(t, users, "Bob", "bob", "pw", common.RoleMember)

	t1 := mustTask(t, tasks, "for alice", datePtr(t, "2025-02-01"), &alice.ID, nil)
	mustTask(t, tasks, "for bob", datePtr(t, "2025-03-01"), &bob.ID, nil)
	if err := tasks.UpdateStatus(t1.ID, common.StatusInProgress); err != nil {
		t.Fatalf("set status: %v", err)
	}

	byAssignee, err := tasks.Dashboard(TaskFilter{AssigneeID: &alice.ID})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(byAssignee) != 1 || byAssignee[0].Title != "for alice" {
		t.Fatalf("assignee filter returned %d tasks", len(byAssignee))
	}

	byStatus, err := tasks.Dashboard(TaskFilter{Status: common.StatusInProgress})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != t1.ID {
		t.Fatalf("status filter returned %d tasks", len(byStatus))
	}

	byRange, err := tasks.Dashboard(TaskFilter{
		From: datePtr(t, "2025-02-15"),
		To:   datePtr(t, "2025-03-15"),
	})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(byRange) != 1 || byRange[0].Title != "for bob" {
		t.Fatalf("range filter returned %d tasks", len(byRange))
	}
}

func TestAssignSetAndClear(t *testing.T) {
	db := newTestDB(t)
	users := newUserService(t, db)
	tasks := NewTaskService(db)

	alice := mustUser(t, users, "Alice", "alice", "pw", common.RoleMember)
	task := mustTask(t, tasks, "task", nil, nil, nil)

	if err := tasks.Assign(task.ID, &alice.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	got, _ := tasks.Get(task.ID)
	if got.AssigneeID == nil || *got.AssigneeID != alice.ID {
		t.Fatalf("assignee not set")
	}

	if err := tasks.Assign(task.ID, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = tasks.Get(task.ID)
	if got.AssigneeID != nil {
		t.Fatalf("assignee not cleared")
	}
}

func TestAddNoteBumpsTaskUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)

	task := mustTask(t, tasks, "task", nil, nil, nil)
	past := time.Now().Add(-time.Hour)
	if err := db.Model(&model.Task{}).Where("id = ?", task.ID).UpdateColumn("updated_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	if _, err := tasks.AddNote(task.ID, 1, "hello"); err != nil {
		t.Fatalf("add note: %v", err)
	}

	got, _ := tasks.Get(task.ID)
	if !got.UpdatedAt.After(past.Add(time.Minute)) {
		t.Fatalf("updated_at not bumped: %v", got.UpdatedAt)
	}

	notes, err := tasks.Notes(task.ID)
	if err != nil {
		t.Fatalf("notes: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "hello" {
		t.Fatalf("unexpected notes: %+v", notes)
	}
}

func TestJobDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	tasks := NewTaskService(db)

	job, err := jobs.Create("renovation", "")
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	keep := mustTask(t, tasks, "unrelated", nil, nil, nil)

	t1 := mustTask(t, tasks, "inside 1", nil, nil, &job.ID)
	t2 := mustTask(t, tasks, "inside 2", nil, nil, &job.ID)
	for _, id := range []uint{t1.ID, t2.ID} {
		if _, err := tasks.AddNote(id, 1, "note"); err != nil {
			t.Fatalf("add note: %v", err)
		}
	}

	if err := jobs.Delete(job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}

	if got := countRows(t, db, &model.Job{}); got != 0 {
		t.Fatalf("jobs left = %d", got)
	}
	if got := countRows(t, db, &model.Task{}); got != 1 {
		t.Fatalf("tasks left = %d, want only the unrelated one", got)
	}
	if got := countRows(t, db, &model.Note{}); got != 0 {
		t.Fatalf("orphaned notes = %d", got)
	}
	if _, err := tasks.Get(keep.ID); err != nil {
		t.Fatalf("unrelated task deleted: %v", err)
	}
}

func TestJobListSearchAndCount(t *testing.T) {
	db := newTestDB(t)
	jobs := NewJobService(db)
	tasks := NewTaskService(db)

	warehouse, err := jobs.Create("warehouse retrofit", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := jobs.Create("office move", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	mustTask(t, tasks, "t", nil, nil, &warehouse.ID)

	found, err := jobs.List("house")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 || found[0].ID != warehouse.ID {
		t.Fatalf("search returned %d jobs", len(found))
	}

	count, err := jobs.TaskCount(warehouse.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("task count = %d, want 1", count)
	}
}
