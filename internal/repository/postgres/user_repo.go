package postgres

import (
	"context"
	"strings"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) withProfiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Worker").Preload("Recruiter")
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

func (r *userRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.withProfiles(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.withProfiles(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func userFilterScope(filter domain.UserFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Role != nil {
			db = db.Where("role = ?", *filter.Role)
		}
		if filter.IsActive != nil {
			db = db.Where("is_active = ?", *filter.IsActive)
		}
		if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
			pattern := likePattern(q)
			db = db.Where(
				`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
				pattern, pattern, pattern,
			)
		}
		return db
	}
}

func (r *userRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(userFilterScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	var users []domain.User
	err = r.withProfiles(ctx).
		Scopes(userFilterScope(filter), paginate(filter.Page, filter.PageSize)).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return users, total, nil
}

func (r *userRepo) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	var users []domain.User
	err := r.withProfiles(ctx).
		Where("role = ? AND is_active = ?", role, true).
		Order("created_at DESC").
		Find(&users).Error
	return users, translateError(err)
}

func (r *userRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", role).Count(&count).Error
	return count, translateError(err)
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error)
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
