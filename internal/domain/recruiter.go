package domain

import (
	"context"
	"time"
)

type RecruiterType string

const (
	RecruiterTypeCompany    RecruiterType = "COMPANY"
	RecruiterTypeGroup      RecruiterType = "GROUP"
	RecruiterTypeIndividual RecruiterType = "INDIVIDUAL"
)

func (t RecruiterType) Valid() bool {
	switch t {
	case RecruiterTypeCompany, RecruiterTypeGroup, RecruiterTypeIndividual:
		return true
	}
	return false
}

// Label is the human readable recruiter type used in emails.
func (t RecruiterType) Label() string {
	switch t {
	case RecruiterTypeCompany:
		return "Company"
	case RecruiterTypeGroup:
		return "Group"
	default:
		return "Individual Recruiter"
	}
}

type Recruiter struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;uniqueIndex" json:"userId"`
	CompanyName *string       `gorm:"size:255" json:"companyName,omitempty"`
	Type        RecruiterType `gorm:"size:20;not null;index" json:"type"`
	Description *string       `gorm:"type:text" json:"description,omitempty"`
	Location    *string       `gorm:"size:255" json:"location,omitempty"`
	Website     *string       `gorm:"size:500" json:"website,omitempty"`
	Verified    bool          `gorm:"not null;index" json:"verified"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	User        *UserSummary  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// RecruiterSummary is the bounded view of a recruiter embedded in related records.
type RecruiterSummary struct {
	ID          uint         `json:"id"`
	UserID      uint         `json:"userId"`
	CompanyName *string      `json:"companyName,omitempty"`
	User        *UserSummary `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (RecruiterSummary) TableName() string { return "recruiters" }

// DisplayName is the company name, or "a company" when none was given.
func (r *RecruiterSummary) DisplayName() string {
	if r.CompanyName != nil && *r.CompanyName != "" {
		return *r.CompanyName
	}
	return "a company"
}

type RecruiterFilter struct {
	Type     *RecruiterType
	Location string
	Verified *bool
	Search   string
	Page     int
	PageSize int
}

type RecruiterList struct {
	Recruiters []Recruiter `json:"recruiters"`
	Pagination Pagination  `json:"pagination"`
}

type RecruiterStats struct {
	Total      int64                   `json:"total"`
	Verified   int64                   `json:"verified"`
	Unverified int64                   `json:"unverified"`
	ByType     map[RecruiterType]int64 `json:"byType"`
}

// RegisterRecruiterInput creates the recruiter's user account and profile together.
type RegisterRecruiterInput struct {
	Email       string        `json:"email" binding:"required,email,max=255"`
	Password    string        `json:"password" binding:"required,min=6,max=72"`
	FirstName   string        `json:"firstName" binding:"required,valid_name"`
	LastName    string        `json:"lastName" binding:"required,valid_name"`
	Phone       *string       `json:"phone" binding:"omitempty,valid_phone"`
	CompanyName *string       `json:"companyName" binding:"omitempty,max=255"`
	Type        RecruiterType `json:"type" binding:"required,oneof=COMPANY GROUP INDIVIDUAL"`
	Description *string       `json:"description"`
	Location    *string       `json:"location" binding:"omitempty,max=255"`
	Website     *string       `json:"website" binding:"omitempty,url,max=500"`
}

type UpdateRecruiterInput struct {
	UserID      *uint          `json:"userId"`
	CompanyName *string        `json:"companyName" binding:"omitempty,max=255"`
	Type        *RecruiterType `json:"type" binding:"omitempty,oneof=COMPANY GROUP INDIVIDUAL"`
	Description *string        `json:"description"`
	Location    *string        `json:"location" binding:"omitempty,max=255"`
	Website     *string        `json:"website" binding:"omitempty,url,max=500"`
	Verified    *bool          `json:"verified"`
}

type RecruiterRepository interface {
	// CreateWithUser inserts the user and the recruiter profile in one transaction.
	CreateWithUser(ctx context.Context, user *User, recruiter *Recruiter) error
	GetByID(ctx context.Context, id uint) (*Recruiter, error)
	GetByUserID(ctx context.Context, userID uint) (*Recruiter, error)
	List(ctx context.Context, filter RecruiterFilter) ([]Recruiter, int64, error)
	Stats(ctx context.Context) (*RecruiterStats, error)
	Update(ctx context.Context, recruiter *Recruiter) error
	SetVerified(ctx context.Context, id uint, verified bool) (*Recruiter, error)
	ToggleVerified(ctx context.Context, id uint) (*Recruiter, error)
	Delete(ctx context.Context, id uint) error
}

type RecruiterUsecase interface {
	Register(ctx context.Context, input RegisterRecruiterInput) (*Recruiter, error)
	List(ctx context.Context, filter RecruiterFilter) (*RecruiterList, error)
	Stats(ctx context.Context) (*RecruiterStats, error)
	GetByID(ctx context.Context, id uint) (*Recruiter, error)
	GetByUserID(ctx context.Context, userID uint) (*Recruiter, error)
	Update(ctx context.Context, actor Actor, id uint, input UpdateRecruiterInput) (*Recruiter, error)
	Verify(ctx context.Context, id uint) (*Recruiter, error)
	Unverify(ctx context.Context, id uint) (*Recruiter, error)
	ToggleVerification(ctx context.Context, id uint) (*Recruiter, error)
	Delete(ctx context.Context, id uint) error
}
