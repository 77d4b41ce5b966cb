package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"teamtasks/model"
)

// newTestDB opens an isolated in-memory database. A single connection
// keeps the whole test on one sqlite memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Job{},
		&model.Task{},
		&model.Note{},
		&model.PasswordReset{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	// MinCost keeps the bcrypt work out of the test runtime
	return NewUserService(db, bcrypt.MinCost)
}

func mustUser(t *testing.T, s *UserService, fullName, username, password, role string) *model.User {
	t.Helper()
	user, err := s.Create(fullName, username, password, role)
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return user
}

func mustTask(t *testing.T, s *TaskService, title string, due *time.Time, assigneeID, jobID *uint) *model.Task {
	t.Helper()
	task, err := s.Create(title, "", due, assigneeID, jobID)
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return &d
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(m).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}
