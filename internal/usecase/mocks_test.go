package usecase_test

import (
	"context"
	"time"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/security/antivirus"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Get(1).(int64), args.Error(2)
}
func (m *MockUserRepo) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}
func (m *MockUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockWorkerRepo struct {
	mock.Mock
}

func (m *MockWorkerRepo) Create(ctx context.Context, worker *domain.Worker) error {
	return m.Called(ctx, worker).Error(0)
}
func (m *MockWorkerRepo) GetByID(ctx context.Context, id uint) (*domain.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}
func (m *MockWorkerRepo) GetByUserID(ctx context.Context, userID uint) (*domain.Worker, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}
func (m *MockWorkerRepo) List(ctx context.Context) ([]domain.Worker, error) {
	args := m.Called(ctx)
	workers, _ := args.Get(0).([]domain.Worker)
	return workers, args.Error(1)
}
func (m *MockWorkerRepo) Update(ctx context.Context, worker *domain.Worker) error {
	return m.Called(ctx, worker).Error(0)
}
func (m *MockWorkerRepo) ToggleAvailability(ctx context.Context, id uint) (*domain.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}
func (m *MockWorkerRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockRecruiterRepo struct {
	mock.Mock
}

func (m *MockRecruiterRepo) CreateWithUser(ctx context.Context, user *domain.User, recruiter *domain.Recruiter) error {
	return m.Called(ctx, user, recruiter).Error(0)
}
func (m *MockRecruiterRepo) GetByID(ctx context.Context, id uint) (*domain.Recruiter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}
func (m *MockRecruiterRepo) GetByUserID(ctx context.Context, userID uint) (*domain.Recruiter, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}
func (m *MockRecruiterRepo) List(ctx context.Context, filter domain.RecruiterFilter) ([]domain.Recruiter, int64, error) {
	args := m.Called(ctx, filter)
	recruiters, _ := args.Get(0).([]domain.Recruiter)
	return recruiters, args.Get(1).(int64), args.Error(2)
}
func (m *MockRecruiterRepo) Stats(ctx context.Context) (*domain.RecruiterStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruiterStats), args.Error(1)
}
func (m *MockRecruiterRepo) Update(ctx context.Context, recruiter *domain.Recruiter) error {
	return m.Called(ctx, recruiter).Error(0)
}
func (m *MockRecruiterRepo) SetVerified(ctx context.Context, id uint, verified bool) (*domain.Recruiter, error) {
	args := m.Called(ctx, id, verified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}
func (m *MockRecruiterRepo) ToggleVerified(ctx context.Context, id uint) (*domain.Recruiter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recruiter), args.Error(1)
}
func (m *MockRecruiterRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *domain.JobCategory) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepo) GetByID(ctx context.Context, id uint) (*domain.JobCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobCategory), args.Error(1)
}
func (m *MockCategoryRepo) GetByName(ctx context.Context, name string) (*domain.JobCategory, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobCategory), args.Error(1)
}
func (m *MockCategoryRepo) List(ctx context.Context) ([]domain.JobCategory, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]domain.JobCategory)
	return categories, args.Error(1)
}
func (m *MockCategoryRepo) Update(ctx context.Context, category *domain.JobCategory) error {
	return m.Called(ctx, category).Error(0)
}
func (m *MockCategoryRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id uint) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) List(ctx context.Context, filter domain.JobFilter) ([]domain.Job, error) {
	args := m.Called(ctx, filter)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) ToggleActive(ctx context.Context, id uint) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) CountDependents(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockJobRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id uint) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, jobID, workerID uint) (bool, error) {
	args := m.Called(ctx, jobID, workerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, filter)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}
func (m *MockApplicationRepo) Update(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, assignment *domain.WorkAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}
func (m *MockAssignmentRepo) GetByID(ctx context.Context, id uint) (*domain.WorkAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkAssignment), args.Error(1)
}
func (m *MockAssignmentRepo) Exists(ctx context.Context, jobID, workerID uint, workDate time.Time) (bool, error) {
	args := m.Called(ctx, jobID, workerID, workDate)
	return args.Bool(0), args.Error(1)
}
func (m *MockAssignmentRepo) List(ctx context.Context, filter domain.WorkAssignmentFilter) ([]domain.WorkAssignment, error) {
	args := m.Called(ctx, filter)
	assignments, _ := args.Get(0).([]domain.WorkAssignment)
	return assignments, args.Error(1)
}
func (m *MockAssignmentRepo) Update(ctx context.Context, assignment *domain.WorkAssignment) error {
	return m.Called(ctx, assignment).Error(0)
}
func (m *MockAssignmentRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockConnectionRepo struct {
	mock.Mock
}

func (m *MockConnectionRepo) Create(ctx context.Context, request *domain.ConnectionRequest) error {
	return m.Called(ctx, request).Error(0)
}
func (m *MockConnectionRepo) GetByID(ctx context.Context, id uint) (*domain.ConnectionRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConnectionRequest), args.Error(1)
}
func (m *MockConnectionRepo) ExistsOpen(ctx context.Context, recruiterID, workerID uint) (bool, error) {
	args := m.Called(ctx, recruiterID, workerID)
	return args.Bool(0), args.Error(1)
}
func (m *MockConnectionRepo) List(ctx context.Context, filter domain.ConnectionRequestFilter) ([]domain.ConnectionRequest, error) {
	args := m.Called(ctx, filter)
	requests, _ := args.Get(0).([]domain.ConnectionRequest)
	return requests, args.Error(1)
}
func (m *MockConnectionRepo) Update(ctx context.Context, request *domain.ConnectionRequest) error {
	return m.Called(ctx, request).Error(0)
}

// MockNotifier records notifications; its methods never block.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendWelcome(user *domain.User, recruiterType domain.RecruiterType) {
	m.Called(user, recruiterType)
}
func (m *MockNotifier) SendSubscriptionWelcome(email, name string) {
	m.Called(email, name)
}
func (m *MockNotifier) SendJobApplicationReceived(recruiter *domain.UserSummary, job *domain.Job, worker *domain.WorkerSummary, message *string) {
	m.Called(recruiter, job, worker, message)
}
func (m *MockNotifier) SendWorkAssignmentConfirmed(worker *domain.UserSummary, notice domain.WorkAssignmentNotice) {
	m.Called(worker, notice)
}
func (m *MockNotifier) SendNewConnectionRequest(admins []domain.User, request *domain.ConnectionRequest) {
	m.Called(admins, request)
}
func (m *MockNotifier) SendConnectionApproved(request *domain.ConnectionRequest) {
	m.Called(request)
}
func (m *MockNotifier) SendConnectionRejected(request *domain.ConnectionRequest) {
	m.Called(request)
}

type MockLoginTracker struct {
	mock.Mock
}

func (m *MockLoginTracker) IsBlocked(ctx context.Context, email, ip string) (bool, error) {
	args := m.Called(ctx, email, ip)
	return args.Bool(0), args.Error(1)
}
func (m *MockLoginTracker) RecordFailedAttempt(ctx context.Context, email, ip, userAgent, requestID string) (bool, int, error) {
	args := m.Called(ctx, email, ip, userAgent, requestID)
	return args.Bool(0), args.Int(1), args.Error(2)
}
func (m *MockLoginTracker) ClearAttempts(ctx context.Context, email, ip string) error {
	return m.Called(ctx, email, ip).Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

type stubTokens struct{}

func (stubTokens) Generate(userID uint, email, role string) (string, error) {
	return "signed-token", nil
}

type infectedScanner struct{}

func (infectedScanner) Scan(context.Context, string, []byte) antivirus.ScanResult {
	return antivirus.ScanResult{Infected: true, ThreatName: "Eicar-Test-Signature", ScannerName: "stub"}
}

func (infectedScanner) Name() string { return "stub" }

func (infectedScanner) Available(context.Context) bool { return true }
