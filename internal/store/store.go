package store

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "github.com/Faizan-Faisal/umt-hackathon/internal/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"default:'seeker'" json:"role"`
	Skills       string `gorm:"type:text" json:"skills"`
	Verified     bool   `json:"verified"`
}

// SkillList splits the stored comma-separated skills field.
func (u User) SkillList() []string {
	parts := strings.Split(u.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy   uint   `gorm:"index" json:"created_by"`
	Title       string `gorm:"not null" json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Description string `gorm:"type:text" json:"description"`
	Skills      string `gorm:"type:text" json:"skills"`
	Type        string `gorm:"default:'full-time'" json:"type"`
	Status      string `gorm:"default:'active'" json:"status"`
}

func (j Job) SkillList() []string {
	parts := strings.Split(j.Skills, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobID    uint   `gorm:"index" json:"job_id"`
	UserID   uint   `gorm:"index" json:"user_id"`
	Status   string `gorm:"default:'pending'" json:"status"`
	Proposal string `gorm:"type:text" json:"proposal,omitempty"`
}

// Open connects to Postgres and migrates the schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, apperrors.Unavailable("connecting to database", err)
	}
	if err := db.AutoMigrate(&User{}, &Job{}, &Application{}); err != nil {
		return nil, apperrors.Internal("migrating schema", err)
	}
	return db, nil
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return apperrors.Internal("creating user", err)
	}
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found", err)
	}
	if err != nil {
		return nil, apperrors.Internal("querying user", err)
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user not found", err)
	}
	if err != nil {
		return nil, apperrors.Internal("querying user", err)
	}
	return &user, nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id uint, role string) error {
	res := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return apperrors.Internal("updating role", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("user not found", nil)
	}
	return nil
}

func (s *Store) CreateJob(ctx context.Context, job *Job) error {
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return apperrors.Internal("creating job", err)
	}
	return nil
}

func (s *Store) JobsByCreator(ctx context.Context, userID uint) ([]Job, error) {
	var jobs []Job
	err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperrors.Internal("querying jobs", err)
	}
	return jobs, nil
}

func (s *Store) ActiveJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	err := s.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperrors.Internal("querying jobs", err)
	}
	return jobs, nil
}

func (s *Store) HasApplied(ctx context.Context, jobID, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Application{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Internal("querying applications", err)
	}
	return count > 0, nil
}

func (s *Store) CreateApplication(ctx context.Context, app *Application) error {
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return apperrors.Internal("creating application", err)
	}
	return nil
}

func (s *Store) ApplicationsByUser(ctx context.Context, userID uint) ([]Application, error) {
	var apps []Application
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, apperrors.Internal("querying applications", err)
	}
	return apps, nil
}
