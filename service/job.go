package service

import (
	"errors"

	"gorm.io/gorm"

	"teamtasks/model"
)

type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

func (s *JobService) Create(title, imagePath string) (*model.Job, error) {
	job := model.Job{Title: title, ImagePath: imagePath}
	if err := s.db.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) Get(id uint) (*model.Job, error) {
	var job model.Job
	if err := s.db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// List returns jobs newest first, optionally filtered by a title
// substring. Case sensitivity follows the store's LIKE collation.
func (s *JobService) List(q string) ([]model.Job, error) {
	var jobs []model.Job

	query := s.db.Model(&model.Job{}).Order("created_at desc").Order("id desc")
	if q != "" {
		query = query.Where("title LIKE ?", "%"+q+"%")
	}
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// TaskCount counts the tasks grouped under a job.
func (s *JobService) TaskCount(jobID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&model.Task{}).Where("job_id = ?", jobID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Tasks lists a job's tasks in dashboard order.
func (s *JobService) Tasks(jobID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := s.db.Where("job_id = ?", jobID).
		Order("due_date IS NULL").Order("due_date asc").Order("updated_at desc").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// SetImage replaces the stored image reference.
func (s *JobService) SetImage(id uint, imagePath string) error {
	res := s.db.Model(&model.Job{}).Where("id = ?", id).Update("image_path", imagePath)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a job, its tasks, and those tasks' notes.
func (s *JobService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&model.Task{}).Where("job_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.Note{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", taskIDs).Delete(&model.Task{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Job{}, id).Error
	})
}
