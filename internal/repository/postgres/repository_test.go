package postgres_test

import (
	"context"
	"testing"
	"time"

	"carebridge-backend/internal/domain"
	"carebridge-backend/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type RepositorySuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB

	users       domain.UserRepository
	workers     domain.WorkerRepository
	recruiters  domain.RecruiterRepository
	categories  domain.JobCategoryRepository
	jobs        domain.JobRepository
	apps        domain.ApplicationRepository
	assignments domain.WorkAssignmentRepository
	connections domain.ConnectionRequestRepository
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(postgres.Migrate(db))

	s.ctx = context.Background()
	s.db = db
	s.users = postgres.NewUserRepository(db)
	s.workers = postgres.NewWorkerRepository(db)
	s.recruiters = postgres.NewRecruiterRepository(db)
	s.categories = postgres.NewJobCategoryRepository(db)
	s.jobs = postgres.NewJobRepository(db)
	s.apps = postgres.NewApplicationRepository(db)
	s.assignments = postgres.NewWorkAssignmentRepository(db)
	s.connections = postgres.NewConnectionRequestRepository(db)
}

func (s *RepositorySuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func (s *RepositorySuite) createUser(email string, role domain.Role) *domain.User {
	user := &domain.User{
		Email:     email,
		Password:  "hashed",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      role,
		IsActive:  true,
	}
	s.Require().NoError(s.users.Create(s.ctx, user))
	return user
}

func (s *RepositorySuite) createWorker(email string) *domain.Worker {
	user := s.createUser(email, domain.RoleWorker)
	worker := &domain.Worker{UserID: user.ID, Available: true}
	s.Require().NoError(s.workers.Create(s.ctx, worker))
	return worker
}

func (s *RepositorySuite) createRecruiter(email string, recruiterType domain.RecruiterType, company string) *domain.Recruiter {
	user := &domain.User{Email: email, Password: "hashed", FirstName: "Rick", LastName: "Ross", Role: domain.RoleRecruiter, IsActive: true}
	recruiter := &domain.Recruiter{Type: recruiterType, CompanyName: &company}
	s.Require().NoError(s.recruiters.CreateWithUser(s.ctx, user, recruiter))
	return recruiter
}

func (s *RepositorySuite) createJob(recruiterUserID uint) *domain.Job {
	category := &domain.JobCategory{Name: "Care " + uuid.NewString()[:8]}
	s.Require().NoError(s.categories.Create(s.ctx, category))

	job := &domain.Job{
		Title:         "Night carer",
		Description:   "Overnight support",
		SalaryType:    domain.SalaryMonthly,
		IsActive:      true,
		AllowMultiple: true,
		Skills:        []string{"first aid"},
		CategoryID:    category.ID,
		RecruiterID:   recruiterUserID,
	}
	s.Require().NoError(s.jobs.Create(s.ctx, job))
	return job
}

func (s *RepositorySuite) TestUserDuplicateEmail() {
	s.createUser("dup@example.com", domain.RoleWorker)

	err := s.users.Create(s.ctx, &domain.User{Email: "dup@example.com", Password: "x", FirstName: "A", LastName: "B", Role: domain.RoleWorker})
	s.ErrorIs(err, domain.ErrDuplicate)

	var count int64
	s.db.Model(&domain.User{}).Where("email = ?", "dup@example.com").Count(&count)
	s.Equal(int64(1), count)
}

func (s *RepositorySuite) TestUserGetMissing() {
	_, err := s.users.GetByID(s.ctx, 999)
	s.ErrorIs(err, domain.ErrNotFound)

	s.ErrorIs(s.users.Delete(s.ctx, 999), domain.ErrNotFound)
}

func (s *RepositorySuite) TestUserListFilters() {
	s.createUser("alice@example.com", domain.RoleWorker)
	s.createUser("bob@example.com", domain.RoleRecruiter)
	inactive := s.createUser("carol@example.com", domain.RoleWorker)
	inactive.IsActive = false
	s.Require().NoError(s.users.Update(s.ctx, inactive))

	role := domain.RoleWorker
	users, total, err := s.users.List(s.ctx, domain.UserFilter{Role: &role, Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(users, 2)

	active := true
	users, total, err = s.users.List(s.ctx, domain.UserFilter{Role: &role, IsActive: &active, Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("alice@example.com", users[0].Email)

	users, total, err = s.users.List(s.ctx, domain.UserFilter{Query: "BOB", Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(domain.RoleRecruiter, users[0].Role)

	users, total, err = s.users.List(s.ctx, domain.UserFilter{Page: 2, PageSize: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(users, 1)
}

func (s *RepositorySuite) TestUserSearchTreatsWildcardsLiterally() {
	s.Require().NoError(s.users.Create(s.ctx, &domain.User{
		Email: "first_last@example.com", Password: "x", FirstName: "Ann", LastName: "Lee", Role: domain.RoleWorker, IsActive: true,
	}))
	s.Require().NoError(s.users.Create(s.ctx, &domain.User{
		Email: "firstlast@example.com", Password: "x", FirstName: "Bo", LastName: "100% Kim", Role: domain.RoleWorker, IsActive: true,
	}))

	users, total, err := s.users.List(s.ctx, domain.UserFilter{Query: "_", Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(users, 1)
	s.Equal("first_last@example.com", users[0].Email)

	users, total, err = s.users.List(s.ctx, domain.UserFilter{Query: "%", Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(users, 1)
	s.Equal("firstlast@example.com", users[0].Email)

	users, _, err = s.users.List(s.ctx, domain.UserFilter{Query: "first_l", Page: 1, PageSize: 10})
	s.Require().NoError(err)
	s.Len(users, 1)
}

func (s *RepositorySuite) TestWorkerToggleAvailability() {
	worker := s.createWorker("worker@example.com")

	toggled, err := s.workers.ToggleAvailability(s.ctx, worker.ID)
	s.Require().NoError(err)
	s.False(toggled.Available)
	s.Require().NotNil(toggled.User)
	s.Equal("worker@example.com", toggled.User.Email)

	toggled, err = s.workers.ToggleAvailability(s.ctx, worker.ID)
	s.Require().NoError(err)
	s.True(toggled.Available)

	_, err = s.workers.ToggleAvailability(s.ctx, 999)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *RepositorySuite) TestWorkerOnePerUser() {
	worker := s.createWorker("one@example.com")

	err := s.workers.Create(s.ctx, &domain.Worker{UserID: worker.UserID})
	s.ErrorIs(err, domain.ErrDuplicate)

	var count int64
	s.db.Model(&domain.Worker{}).Where("user_id = ?", worker.UserID).Count(&count)
	s.Equal(int64(1), count)
}

func (s *RepositorySuite) TestRecruiterCreateWithUserRollsBack() {
	s.createUser("taken@example.com", domain.RoleWorker)

	user := &domain.User{Email: "taken@example.com", Password: "x", FirstName: "A", LastName: "B", Role: domain.RoleRecruiter}
	err := s.recruiters.CreateWithUser(s.ctx, user, &domain.Recruiter{Type: domain.RecruiterTypeCompany})
	s.ErrorIs(err, domain.ErrDuplicate)

	var count int64
	s.db.Model(&domain.Recruiter{}).Count(&count)
	s.Zero(count)
}

func (s *RepositorySuite) TestRecruiterListAndStats() {
	acme := s.createRecruiter("acme@example.com", domain.RecruiterTypeCompany, "Acme Care")
	s.createRecruiter("group@example.com", domain.RecruiterTypeGroup, "Helping Hands")
	_, err := s.recruiters.SetVerified(s.ctx, acme.ID, true)
	s.Require().NoError(err)

	verified := true
	list, total, err := s.recruiters.List(s.ctx, domain.RecruiterFilter{Verified: &verified, Page: 1, PageSize: 25})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal(acme.ID, list[0].ID)
	s.Require().NotNil(list[0].User)
	s.Equal("acme@example.com", list[0].User.Email)

	list, total, err = s.recruiters.List(s.ctx, domain.RecruiterFilter{Search: "hands", Page: 1, PageSize: 25})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Equal("Helping Hands", *list[0].CompanyName)

	stats, err := s.recruiters.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), stats.Total)
	s.Equal(int64(1), stats.Verified)
	s.Equal(int64(1), stats.Unverified)
	s.Equal(int64(1), stats.ByType[domain.RecruiterTypeCompany])
	s.Equal(int64(0), stats.ByType[domain.RecruiterTypeIndividual])

	toggled, err := s.recruiters.ToggleVerified(s.ctx, acme.ID)
	s.Require().NoError(err)
	s.False(toggled.Verified)
}

func (s *RepositorySuite) TestCategoryUniqueName() {
	s.Require().NoError(s.categories.Create(s.ctx, &domain.JobCategory{Name: "Elderly care"}))

	err := s.categories.Create(s.ctx, &domain.JobCategory{Name: "Elderly care"})
	s.ErrorIs(err, domain.ErrDuplicate)

	found, err := s.categories.GetByName(s.ctx, "Elderly care")
	s.Require().NoError(err)
	s.Equal("Elderly care", found.Name)

	var count int64
	s.db.Model(&domain.JobCategory{}).Where("name = ?", "Elderly care").Count(&count)
	s.Equal(int64(1), count)
}

func (s *RepositorySuite) TestCategoryListNewestFirst() {
	s.Require().NoError(s.categories.Create(s.ctx, &domain.JobCategory{Name: "Alpha"}))
	s.Require().NoError(s.categories.Create(s.ctx, &domain.JobCategory{Name: "Teacher"}))

	categories, err := s.categories.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(categories, 2)
	s.Equal("Teacher", categories[0].Name)
	s.Equal("Alpha", categories[1].Name)
}

func (s *RepositorySuite) TestCategoryDeleteReferenced() {
	recruiter := s.createUser("rec@example.com", domain.RoleRecruiter)
	job := s.createJob(recruiter.ID)

	err := s.categories.Delete(s.ctx, job.CategoryID)
	s.ErrorIs(err, domain.ErrReferenceViolation)

	_, err = s.categories.GetByID(s.ctx, job.CategoryID)
	s.NoError(err)

	s.ErrorIs(s.categories.Delete(s.ctx, 9999), domain.ErrNotFound)
}

func (s *RepositorySuite) TestJobRelationsAndToggle() {
	recruiter := s.createUser("rec@example.com", domain.RoleRecruiter)
	job := s.createJob(recruiter.ID)

	loaded, err := s.jobs.GetByID(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().NotNil(loaded.Category)
	s.Require().NotNil(loaded.Recruiter)
	s.Equal("rec@example.com", loaded.Recruiter.Email)
	s.Equal([]string{"first aid"}, []string(loaded.Skills))

	toggled, err := s.jobs.ToggleActive(s.ctx, job.ID)
	s.Require().NoError(err)
	s.False(toggled.IsActive)

	active := true
	jobs, err := s.jobs.List(s.ctx, domain.JobFilter{ActiveOnly: &active})
	s.Require().NoError(err)
	s.Empty(jobs)

	jobs, err = s.jobs.List(s.ctx, domain.JobFilter{RecruiterID: &recruiter.ID})
	s.Require().NoError(err)
	s.Len(jobs, 1)
}

func (s *RepositorySuite) TestApplicationUniquePairAndDependents() {
	recruiter := s.createUser("rec@example.com", domain.RoleRecruiter)
	job := s.createJob(recruiter.ID)
	worker := s.createWorker("w@example.com")

	app := &domain.Application{JobID: job.ID, WorkerID: worker.ID, Status: domain.ApplicationPending, AppliedAt: time.Now()}
	s.Require().NoError(s.apps.Create(s.ctx, app))

	err := s.apps.Create(s.ctx, &domain.Application{JobID: job.ID, WorkerID: worker.ID, Status: domain.ApplicationPending, AppliedAt: time.Now()})
	s.ErrorIs(err, domain.ErrDuplicate)

	var rows int64
	s.db.Model(&domain.Application{}).Where("job_id = ? AND worker_id = ?", job.ID, worker.ID).Count(&rows)
	s.Equal(int64(1), rows)

	exists, err := s.apps.Exists(s.ctx, job.ID, worker.ID)
	s.Require().NoError(err)
	s.True(exists)

	loaded, err := s.apps.GetByID(s.ctx, app.ID)
	s.Require().NoError(err)
	s.Require().NotNil(loaded.Job)
	s.Require().NotNil(loaded.Job.Category)
	s.Require().NotNil(loaded.Job.Recruiter)
	s.Require().NotNil(loaded.Worker)
	s.Require().NotNil(loaded.Worker.User)
	s.Equal("w@example.com", loaded.Worker.User.Email)

	count, err := s.jobs.CountDependents(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *RepositorySuite) TestWorkAssignmentUniquePerDay() {
	recruiterProfile := s.createRecruiter("rec@example.com", domain.RecruiterTypeIndividual, "")
	job := s.createJob(recruiterProfile.UserID)
	worker := s.createWorker("w@example.com")
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first := &domain.WorkAssignment{JobID: job.ID, WorkerID: worker.ID, RecruiterID: recruiterProfile.ID, WorkDate: day, Status: domain.AssignmentActive}
	s.Require().NoError(s.assignments.Create(s.ctx, first))

	dup := &domain.WorkAssignment{JobID: job.ID, WorkerID: worker.ID, RecruiterID: recruiterProfile.ID, WorkDate: day, Status: domain.AssignmentActive}
	s.ErrorIs(s.assignments.Create(s.ctx, dup), domain.ErrDuplicate)

	exists, err := s.assignments.Exists(s.ctx, job.ID, worker.ID, day)
	s.Require().NoError(err)
	s.True(exists)

	next := &domain.WorkAssignment{JobID: job.ID, WorkerID: worker.ID, RecruiterID: recruiterProfile.ID, WorkDate: day.AddDate(0, 0, 1), Status: domain.AssignmentActive}
	s.Require().NoError(s.assignments.Create(s.ctx, next))

	list, err := s.assignments.List(s.ctx, domain.WorkAssignmentFilter{WorkerID: &worker.ID})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(next.ID, list[0].ID, "ordered by work date, latest first")
	s.Require().NotNil(list[0].Recruiter)
	s.Require().NotNil(list[0].Recruiter.User)
}

func (s *RepositorySuite) TestConnectionRequestOpenPair() {
	recruiter := s.createRecruiter("rec@example.com", domain.RecruiterTypeCompany, "Acme")
	worker := s.createWorker("w@example.com")

	first := &domain.ConnectionRequest{RecruiterID: recruiter.ID, WorkerID: worker.ID, Status: domain.ConnectionPending}
	s.Require().NoError(s.connections.Create(s.ctx, first))

	dup := &domain.ConnectionRequest{RecruiterID: recruiter.ID, WorkerID: worker.ID, Status: domain.ConnectionPending}
	s.ErrorIs(s.connections.Create(s.ctx, dup), domain.ErrDuplicate)

	first.Status = domain.ConnectionCancelled
	s.Require().NoError(s.connections.Update(s.ctx, first))

	exists, err := s.connections.ExistsOpen(s.ctx, recruiter.ID, worker.ID)
	s.Require().NoError(err)
	s.False(exists)

	again := &domain.ConnectionRequest{RecruiterID: recruiter.ID, WorkerID: worker.ID, Status: domain.ConnectionPending}
	s.Require().NoError(s.connections.Create(s.ctx, again))

	status := domain.ConnectionPending
	list, err := s.connections.List(s.ctx, domain.ConnectionRequestFilter{Status: &status})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(again.ID, list[0].ID)
	s.Require().NotNil(list[0].Worker)
	s.Require().NotNil(list[0].Recruiter)
	s.Equal("Acme", list[0].Recruiter.DisplayName())
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, postgres.Migrate(db))
	require.NoError(t, postgres.Migrate(db))
	assert.True(t, db.Migrator().HasTable("connection_requests"))
}
