package postgres

import (
	"context"
	"strings"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recruiterRepo struct {
	db *gorm.DB
}

func NewRecruiterRepository(db *gorm.DB) domain.RecruiterRepository {
	return &recruiterRepo{db: db}
}

func (r *recruiterRepo) withUser(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User", userSummaryColumns)
}

func (r *recruiterRepo) CreateWithUser(ctx context.Context, user *domain.User, recruiter *domain.Recruiter) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		recruiter.UserID = user.ID
		return tx.Omit(clause.Associations).Create(recruiter).Error
	})
	return translateError(err)
}

func (r *recruiterRepo) GetByID(ctx context.Context, id uint) (*domain.Recruiter, error) {
	var recruiter domain.Recruiter
	if err := r.withUser(ctx).First(&recruiter, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &recruiter, nil
}

func (r *recruiterRepo) GetByUserID(ctx context.Context, userID uint) (*domain.Recruiter, error) {
	var recruiter domain.Recruiter
	if err := r.withUser(ctx).Where("user_id = ?", userID).First(&recruiter).Error; err != nil {
		return nil, translateError(err)
	}
	return &recruiter, nil
}

func recruiterFilterScope(filter domain.RecruiterFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("JOIN users ON users.id = recruiters.user_id")
		if filter.Type != nil {
			db = db.Where("recruiters.type = ?", *filter.Type)
		}
		if filter.Verified != nil {
			db = db.Where("recruiters.verified = ?", *filter.Verified)
		}
		if location := strings.ToLower(strings.TrimSpace(filter.Location)); location != "" {
			db = db.Where(`LOWER(recruiters.location) LIKE ? ESCAPE '\'`, likePattern(location))
		}
		if search := strings.ToLower(strings.TrimSpace(filter.Search)); search != "" {
			pattern := likePattern(search)
			db = db.Where(
				`LOWER(recruiters.company_name) LIKE ? ESCAPE '\' OR LOWER(recruiters.description) LIKE ? ESCAPE '\' OR LOWER(users.first_name) LIKE ? ESCAPE '\' OR LOWER(users.last_name) LIKE ? ESCAPE '\'`,
				pattern, pattern, pattern, pattern,
			)
		}
		return db
	}
}

func (r *recruiterRepo) List(ctx context.Context, filter domain.RecruiterFilter) ([]domain.Recruiter, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Recruiter{}).
		Scopes(recruiterFilterScope(filter)).
		Count(&total).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	var recruiters []domain.Recruiter
	err = r.withUser(ctx).
		Select("recruiters.*").
		Scopes(recruiterFilterScope(filter), paginate(filter.Page, filter.PageSize)).
		Order("recruiters.created_at DESC").
		Find(&recruiters).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return recruiters, total, nil
}

func (r *recruiterRepo) Stats(ctx context.Context) (*domain.RecruiterStats, error) {
	var rows []struct {
		Type     domain.RecruiterType
		Verified bool
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Recruiter{}).
		Select("type, verified, COUNT(*) AS count").
		Group("type, verified").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}

	stats := &domain.RecruiterStats{ByType: map[domain.RecruiterType]int64{
		domain.RecruiterTypeCompany:    0,
		domain.RecruiterTypeGroup:      0,
		domain.RecruiterTypeIndividual: 0,
	}}
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByType[row.Type] += row.Count
		if row.Verified {
			stats.Verified += row.Count
		} else {
			stats.Unverified += row.Count
		}
	}
	return stats, nil
}

func (r *recruiterRepo) Update(ctx context.Context, recruiter *domain.Recruiter) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Save(recruiter).Error)
}

func (r *recruiterRepo) SetVerified(ctx context.Context, id uint, verified bool) (*domain.Recruiter, error) {
	result := r.db.WithContext(ctx).Model(&domain.Recruiter{}).
		Where("id = ?", id).
		Update("verified", verified)
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *recruiterRepo) ToggleVerified(ctx context.Context, id uint) (*domain.Recruiter, error) {
	result := r.db.WithContext(ctx).Model(&domain.Recruiter{}).
		Where("id = ?", id).
		Update("verified", gorm.Expr("NOT verified"))
	if result.Error != nil {
		return nil, translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *recruiterRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Recruiter{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
