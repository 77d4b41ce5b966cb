package service

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamtasks/common"
	"teamtasks/model"
)

// resetTTL is how long a password reset link stays valid.
const resetTTL = 24 * time.Hour

type UserService struct {
	db   *gorm.DB
	cost int
}

func NewUserService(db *gorm.DB, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{db: db, cost: bcryptCost}
}

// HashPassword applies the process-wide bcrypt cost.
func (s *UserService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *UserService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HasUsers reports whether any account exists, i.e. whether bootstrap
// is still open.
func (s *UserService) HasUsers() (bool, error) {
	var count int64
	if err := s.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Bootstrap creates the one-time first manager account. Closed as soon
// as any user exists.
func (s *UserService) Bootstrap(fullName, username, password string) (*model.User, error) {
	exists, err := s.HasUsers()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBootstrapClosed
	}
	return s.Create(fullName, username, password, common.RoleManager)
}

// Create adds an account with a normalized unique username.
func (s *UserService) Create(fullName, username, password, role string) (*model.User, error) {
	var (
		err      error
		existing model.User
	)

	norm := common.NormalizeUsername(username)

	err = s.db.Where("username = ?", norm).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     norm,
		FullName:     fullName,
		Role:         role,
		PasswordHash: hash,
	}
	if err = s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate looks the user up by normalized username and verifies
// the password. The single error value keeps login failures
// indistinguishable.
func (s *UserService) Authenticate(username, password string) (*model.User, error) {
	var user model.User

	norm := common.NormalizeUsername(username)
	if err := s.db.Where("username = ?", norm).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrBadCredentials
	}
	return &user, nil
}

func (s *UserService) Get(id uint) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes a user together with the tasks assigned to them (and
// those tasks' notes) and the notes they authored. Self-deletion is
// rejected.
func (s *UserService) Delete(actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfDelete
	}

	var target model.User
	if err := s.db.First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var taskIDs []uint
		if err := tx.Model(&model.Task{}).Where("assignee_id = ?", targetID).Pluck("id", &taskIDs).Error; err != nil {
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
		if err := tx.Where("author_id = ?", targetID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&model.PasswordReset{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, targetID).Error
	})
}

// CreateReset issues a reset token for the named account. An unknown
// username yields (nil, nil) so callers can render the same success
// view either way.
func (s *UserService) CreateReset(username string) (*model.PasswordReset, error) {
	var user model.User

	norm := common.NormalizeUsername(username)
	if err := s.db.Where("username = ?", norm).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	reset := model.PasswordReset{
		UserID:    user.ID,
		Token:     common.RandomToken(),
		ExpiresAt: time.Now().Add(resetTTL),
	}
	if err := s.db.Create(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

// ValidateReset returns the pending reset for a token that is known,
// unused and unexpired.
func (s *UserService) ValidateReset(token string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	if err := s.db.Where("token = ?", token).First(&reset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadToken
		}
		return nil, err
	}
	if reset.Used || time.Now().After(reset.ExpiresAt) {
		return nil, ErrBadToken
	}
	return &reset, nil
}

// CompleteReset sets the new password and burns the token.
func (s *UserService) CompleteReset(token, password, password2 string) error {
	if password != password2 {
		return ErrPasswordMatch
	}

	reset, err := s.ValidateReset(token)
	if err != nil {
		return err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).Where("id = ?", reset.UserID).Update("password_hash", hash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&model.PasswordReset{}).Where("id = ?", reset.ID).Update("used", true).Error
	})
}
