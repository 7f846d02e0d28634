package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
	RoleWorker    Role = "WORKER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleWorker:
		return true
	}
	return false
}

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	FirstName string     `gorm:"size:100;not null" json:"firstName"`
	LastName  string     `gorm:"size:100;not null" json:"lastName"`
	Phone     *string    `gorm:"size:30" json:"phone,omitempty"`
	Avatar    *string    `gorm:"size:500" json:"avatar,omitempty"`
	Role      Role       `gorm:"size:20;not null;index" json:"role"`
	IsActive  bool       `gorm:"not null" json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Worker    *Worker    `gorm:"foreignKey:UserID" json:"worker,omitempty"`
	Recruiter *Recruiter `gorm:"foreignKey:UserID" json:"recruiter,omitempty"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserSummary is the bounded view of a user embedded in related records.
type UserSummary struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar,omitempty"`
}

func (UserSummary) TableName() string { return "users" }

func (u *UserSummary) FullName() string {
	return u.FirstName + " " + u.LastName
}

type UserFilter struct {
	Query    string
	Role     *Role
	IsActive *bool
	Page     int
	PageSize int
}

// UserList is the paged user listing.
type UserList struct {
	TotalCount int64  `json:"totalCount"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	Users      []User `json:"users"`
}

type CreateUserInput struct {
	Email     string  `json:"email" form:"email" binding:"required,email,max=255"`
	Password  string  `json:"password" form:"password" binding:"required,min=6,max=72"`
	FirstName string  `json:"firstName" form:"firstName" binding:"required,valid_name"`
	LastName  string  `json:"lastName" form:"lastName" binding:"required,valid_name"`
	Phone     *string `json:"phone" form:"phone" binding:"omitempty,valid_phone"`
	Role      Role    `json:"role" form:"role" binding:"omitempty,oneof=ADMIN RECRUITER WORKER"`
	IsActive  *bool   `json:"isActive" form:"isActive"`
}

type UpdateUserInput struct {
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	Password  *string `json:"password" binding:"omitempty,min=6,max=72"`
	FirstName *string `json:"firstName" binding:"omitempty,valid_name"`
	LastName  *string `json:"lastName" binding:"omitempty,valid_name"`
	Phone     *string `json:"phone" binding:"omitempty,valid_phone"`
	Role      *Role   `json:"role" binding:"omitempty,oneof=ADMIN RECRUITER WORKER"`
	IsActive  *bool   `json:"isActive"`
}

// FileUpload is a file received from a multipart form.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)
	ListActiveByRole(ctx context.Context, role Role) ([]User, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}

type UserUsecase interface {
	Create(ctx context.Context, actor *Actor, input CreateUserInput, avatar *FileUpload) (*User, error)
	List(ctx context.Context, filter UserFilter) (*UserList, error)
	Search(ctx context.Context, filter UserFilter) (*UserList, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetJobs(ctx context.Context, id uint) ([]Job, error)
	GetApplications(ctx context.Context, id uint) ([]Application, error)
	GetWorkAssignments(ctx context.Context, id uint) ([]WorkAssignment, error)
	Update(ctx context.Context, actor Actor, id uint, input UpdateUserInput) (*User, error)
	UpdateAvatar(ctx context.Context, actor Actor, id uint, avatar FileUpload) (*User, error)
	UpdateRole(ctx context.Context, actor Actor, id uint, role Role) (*User, error)
	ToggleStatus(ctx context.Context, actor Actor, id uint) (*User, error)
	Delete(ctx context.Context, actor Actor, id uint) error
	EnsureAdmin(ctx context.Context, email, password string) error
}

type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// LoginMeta carries request details used for brute force tracking.
type LoginMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

type AuthUsecase interface {
	Login(ctx context.Context, email, password string, meta LoginMeta) (*LoginResult, error)
	Profile(ctx context.Context, userID uint) (*User, error)
}

// LoginAttemptTracker counts failed logins and blocks abusive callers.
type LoginAttemptTracker interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error)
	ClearAttempts(ctx context.Context, email, ip string) error
}
