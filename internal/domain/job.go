package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

type SalaryType string

const (
	SalaryHourly  SalaryType = "HOURLY"
	SalaryDaily   SalaryType = "DAILY"
	SalaryWeekly  SalaryType = "WEEKLY"
	SalaryMonthly SalaryType = "MONTHLY"
	SalaryYearly  SalaryType = "YEARLY"
)

// Job is a posting owned by a recruiter user.
type Job struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Description   string                      `gorm:"type:text;not null" json:"description"`
	Location      *string                     `gorm:"size:255" json:"location,omitempty"`
	Salary        *int                        `json:"salary,omitempty"`
	SalaryType    SalaryType                  `gorm:"size:20;not null" json:"salaryType"`
	Requirements  *string                     `gorm:"type:text" json:"requirements,omitempty"`
	WorkingHours  *string                     `gorm:"size:255" json:"workingHours,omitempty"`
	IsActive      bool                        `gorm:"not null;index" json:"isActive"`
	AllowMultiple bool                        `gorm:"not null" json:"allowMultiple"`
	Urgent        bool                        `gorm:"not null" json:"urgent"`
	Skills        datatypes.JSONSlice[string] `json:"skills"`
	CategoryID    uint                        `gorm:"not null;index" json:"categoryId"`
	RecruiterID   uint                        `gorm:"not null;index" json:"recruiterId"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
	Category      *JobCategory                `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Recruiter     *UserSummary                `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
}

type CreateJobInput struct {
	Title         string      `json:"title" binding:"required,max=255,no_emoji"`
	Description   string      `json:"description" binding:"required"`
	Location      *string     `json:"location" binding:"omitempty,max=255"`
	Salary        *int        `json:"salary" binding:"omitempty,min=0"`
	SalaryType    *SalaryType `json:"salaryType" binding:"omitempty,oneof=HOURLY DAILY WEEKLY MONTHLY YEARLY"`
	Requirements  *string     `json:"requirements"`
	WorkingHours  *string     `json:"workingHours" binding:"omitempty,max=255"`
	IsActive      *bool       `json:"isActive"`
	AllowMultiple *bool       `json:"allowMultiple"`
	Urgent        *bool       `json:"urgent"`
	Skills        []string    `json:"skills" binding:"omitempty,dive,max=100"`
	CategoryID    uint        `json:"categoryId" binding:"required"`
	RecruiterID   *uint       `json:"recruiterId"`
}

type UpdateJobInput struct {
	Title         *string     `json:"title" binding:"omitempty,min=1,max=255,no_emoji"`
	Description   *string     `json:"description" binding:"omitempty,min=1"`
	Location      *string     `json:"location" binding:"omitempty,max=255"`
	Salary        *int        `json:"salary" binding:"omitempty,min=0"`
	SalaryType    *SalaryType `json:"salaryType" binding:"omitempty,oneof=HOURLY DAILY WEEKLY MONTHLY YEARLY"`
	Requirements  *string     `json:"requirements"`
	WorkingHours  *string     `json:"workingHours" binding:"omitempty,max=255"`
	IsActive      *bool       `json:"isActive"`
	AllowMultiple *bool       `json:"allowMultiple"`
	Urgent        *bool       `json:"urgent"`
	Skills        []string    `json:"skills" binding:"omitempty,dive,max=100"`
	CategoryID    *uint       `json:"categoryId"`
	RecruiterID   *uint       `json:"recruiterId"`
}

type JobFilter struct {
	RecruiterID *uint
	ActiveOnly  *bool
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id uint) (*Job, error)
	List(ctx context.Context, filter JobFilter) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	ToggleActive(ctx context.Context, id uint) (*Job, error)
	// CountDependents returns the number of applications and work assignments referencing the job.
	CountDependents(ctx context.Context, id uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type JobUsecase interface {
	Create(ctx context.Context, actor Actor, input CreateJobInput) (*Job, error)
	List(ctx context.Context, activeOnly bool) ([]Job, error)
	ListMine(ctx context.Context, actor Actor, activeOnly *bool) ([]Job, error)
	GetByID(ctx context.Context, id uint) (*Job, error)
	Update(ctx context.Context, actor Actor, id uint, input UpdateJobInput) (*Job, error)
	ToggleActive(ctx context.Context, actor Actor, id uint) (*Job, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}
