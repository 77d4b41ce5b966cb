package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"teamtasks/common"
	"teamtasks/model"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskFilter holds the optional dashboard filters. Nil/empty fields are
// not applied.
type TaskFilter struct {
	AssigneeID *uint
	Status     string
	From       *time.Time
	To         *time.Time
}

func (s *TaskService) Create(title, description string, due *time.Time, assigneeID, jobID *uint) (*model.Task, error) {
	task := model.Task{
		Title:       title,
		Description: description,
		DueDate:     due,
		Status:      common.StatusTodo,
		AssigneeID:  assigneeID,
		JobID:       jobID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) Get(id uint) (*model.Task, error) {
	var task model.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// Dashboard returns tasks matching the filter, dated tasks first by due
// date ascending, undated last, ties most-recently-updated first.
func (s *TaskService) Dashboard(filter TaskFilter) ([]model.Task, error) {
	var tasks []model.Task

	q := s.db.Model(&model.Task{})
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("due_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("due_date <= ?", *filter.To)
	}

	err := q.Order("due_date IS NULL").Order("due_date asc").Order("updated_at desc").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatus sets any of the four states; no transition order is
// enforced beyond membership.
func (s *TaskService) UpdateStatus(id uint, status string) error {
	if !common.ValidStatus(status) {
		return ErrInvalidStatus
	}

	task, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Model(task).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}).Error
}

// Assign sets or clears (nil) the assignee and bumps updated_at.
func (s *TaskService) Assign(id uint, assigneeID *uint) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.db.Model(task).Updates(map[string]interface{}{
		"assignee_id": assigneeID,
		"updated_at":  time.Now(),
	}).Error
}

// Delete removes a done task and its notes. Any other status is a
// business-rule violation.
func (s *TaskService) Delete(id uint) error {
	task, err := s.Get(id)
	if err != nil {
		return err
	}
	if task.Status != common.StatusDone {
		return ErrTaskNotDone
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{}, id).Error
	})
}

// AddNote appends an immutable note and bumps the parent task's
// updated_at.
func (s *TaskService) AddNote(taskID, authorID uint, content string) (*model.Note, error) {
	task, err := s.Get(taskID)
	if err != nil {
		return nil, err
	}

	note := model.Note{
		TaskID:   taskID,
		AuthorID: authorID,
		Content:  content,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
		return tx.Model(task).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Notes lists a task's notes oldest first.
func (s *TaskService) Notes(taskID uint) ([]model.Note, error) {
	var notes []model.Note
	if err := s.db.Where("task_id = ?", taskID).Order("created_at").Order("id").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}
