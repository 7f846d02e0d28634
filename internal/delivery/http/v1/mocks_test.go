package v1

import (
	"context"

	"carebridge-backend/internal/domain"
	"carebridge-backend/pkg/apperror"

	"github.com/stretchr/testify/mock"
)

type stubAuthUC struct {
	users map[uint]*domain.User
}

func (s stubAuthUC) Login(context.Context, string, string, domain.LoginMeta) (*domain.LoginResult, error) {
	return &domain.LoginResult{Token: "signed", User: s.users[1]}, nil
}

func (s stubAuthUC) Profile(_ context.Context, id uint) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, apperror.NotFound("User not found")
}

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Create(ctx context.Context, actor *domain.Actor, input domain.CreateUserInput, avatar *domain.FileUpload) (*domain.User, error) {
	args := m.Called(ctx, actor, input, avatar)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserUsecase) List(ctx context.Context, filter domain.UserFilter) (*domain.UserList, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*domain.UserList)
	return list, args.Error(1)
}

func (m *MockUserUsecase) Search(ctx context.Context, filter domain.UserFilter) (*domain.UserList, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).(*domain.UserList)
	return list, args.Error(1)
}

func (m *MockUserUsecase) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]domain.User)
	return users, args.Error(1)
}

func (m *MockUserUsecase) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserUsecase) GetJobs(ctx context.Context, id uint) ([]domain.Job, error) {
	args := m.Called(ctx, id)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *MockUserUsecase) GetApplications(ctx context.Context, id uint) ([]domain.Application, error) {
	args := m.Called(ctx, id)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}

func (m *MockUserUsecase) GetWorkAssignments(ctx context.Context, id uint) ([]domain.WorkAssignment, error) {
	args := m.Called(ctx, id)
	assignments, _ := args.Get(0).([]domain.WorkAssignment)
	return assignments, args.Error(1)
}

func (m *MockUserUsecase) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UpdateUserInput) (*domain.User, error) {
	args := m.Called(ctx, actor, id, input)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserUsecase) UpdateAvatar(ctx context.Context, actor domain.Actor, id uint, avatar domain.FileUpload) (*domain.User, error) {
	args := m.Called(ctx, actor, id, avatar)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserUsecase) UpdateRole(ctx context.Context, actor domain.Actor, id uint, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, actor, id, role)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserUsecase) ToggleStatus(ctx context.Context, actor domain.Actor, id uint) (*domain.User, error) {
	args := m.Called(ctx, actor, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserUsecase) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockUserUsecase) EnsureAdmin(ctx context.Context, email, password string) error {
	return m.Called(ctx, email, password).Error(0)
}

func userOrNil(v interface{}) *domain.User {
	user, _ := v.(*domain.User)
	return user
}

type MockWorkerUsecase struct {
	mock.Mock
}

func (m *MockWorkerUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CreateWorkerInput) (*domain.Worker, error) {
	args := m.Called(ctx, actor, input)
	return workerOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkerUsecase) List(ctx context.Context) ([]domain.Worker, error) {
	args := m.Called(ctx)
	workers, _ := args.Get(0).([]domain.Worker)
	return workers, args.Error(1)
}

func (m *MockWorkerUsecase) GetByID(ctx context.Context, id uint) (*domain.Worker, error) {
	args := m.Called(ctx, id)
	return workerOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkerUsecase) GetByUserID(ctx context.Context, userID uint) (*domain.Worker, error) {
	args := m.Called(ctx, userID)
	return workerOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkerUsecase) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UpdateWorkerInput) (*domain.Worker, error) {
	args := m.Called(ctx, actor, id, input)
	return workerOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkerUsecase) UpdateMine(ctx context.Context, actor domain.Actor, input domain.UpdateWorkerInput) (*domain.Worker, error) {
	args := m.Called(ctx, actor, input)
	return workerOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkerUsecase) ToggleAvailability(ctx context.Context, id uint) (*domain.Worker, error) {
	args := m.Called(ctx, id)
	return workerOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkerUsecase) ToggleMyAvailability(ctx context.Context, actor domain.Actor) (*domain.Worker, error) {
	args := m.Called(ctx, actor)
	return workerOrNil(args.Get(0)), args.Error(1)
}

func (m *MockWorkerUsecase) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func workerOrNil(v interface{}) *domain.Worker {
	worker, _ := v.(*domain.Worker)
	return worker
}

type MockJobUsecase struct {
	mock.Mock
}

func (m *MockJobUsecase) Create(ctx context.Context, actor domain.Actor, input domain.CreateJobInput) (*domain.Job, error) {
	args := m.Called(ctx, actor, input)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobUsecase) List(ctx context.Context, activeOnly bool) ([]domain.Job, error) {
	args := m.Called(ctx, activeOnly)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *MockJobUsecase) ListMine(ctx context.Context, actor domain.Actor, activeOnly *bool) ([]domain.Job, error) {
	args := m.Called(ctx, actor, activeOnly)
	jobs, _ := args.Get(0).([]domain.Job)
	return jobs, args.Error(1)
}

func (m *MockJobUsecase) GetByID(ctx context.Context, id uint) (*domain.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobUsecase) Update(ctx context.Context, actor domain.Actor, id uint, input domain.UpdateJobInput) (*domain.Job, error) {
	args := m.Called(ctx, actor, id, input)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobUsecase) ToggleActive(ctx context.Context, actor domain.Actor, id uint) (*domain.Job, error) {
	args := m.Called(ctx, actor, id)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobUsecase) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	return m.Called(ctx, actor, id).Error(0)
}

type MockApplicationUsecase struct {
	mock.Mock
}

func (m *MockApplicationUsecase) Create(ctx context.Context, input domain.CreateApplicationInput) (*domain.Application, error) {
	args := m.Called(ctx, input)
	app, _ := args.Get(0).(*domain.Application)
	return app, args.Error(1)
}

func (m *MockApplicationUsecase) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, filter)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}

func (m *MockApplicationUsecase) GetByID(ctx context.Context, id uint) (*domain.Application, error) {
	args := m.Called(ctx, id)
	app, _ := args.Get(0).(*domain.Application)
	return app, args.Error(1)
}

func (m *MockApplicationUsecase) ListByJob(ctx context.Context, jobID uint) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}

func (m *MockApplicationUsecase) ListByWorker(ctx context.Context, workerID uint) ([]domain.Application, error) {
	args := m.Called(ctx, workerID)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}

func (m *MockApplicationUsecase) Update(ctx context.Context, id uint, input domain.UpdateApplicationInput) (*domain.Application, error) {
	args := m.Called(ctx, id, input)
	app, _ := args.Get(0).(*domain.Application)
	return app, args.Error(1)
}

func (m *MockApplicationUsecase) UpdateStatus(ctx context.Context, id uint, status domain.ApplicationStatus) (*domain.Application, error) {
	args := m.Called(ctx, id, status)
	app, _ := args.Get(0).(*domain.Application)
	return app, args.Error(1)
}

func (m *MockApplicationUsecase) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockExportUsecase struct {
	mock.Mock
}

func (m *MockExportUsecase) ExportUsers(ctx context.Context, filter domain.UserFilter) (*domain.ExportFile, error) {
	args := m.Called(ctx, filter)
	file, _ := args.Get(0).(*domain.ExportFile)
	return file, args.Error(1)
}

func (m *MockExportUsecase) ExportApplications(ctx context.Context, filter domain.ApplicationFilter) (*domain.ExportFile, error) {
	args := m.Called(ctx, filter)
	file, _ := args.Get(0).(*domain.ExportFile)
	return file, args.Error(1)
}

type stubHealthUC struct {
	status domain.HealthStatus
}

func (s stubHealthUC) Check(context.Context) *domain.HealthStatus {
	status := s.status
	return &status
}

type recordingSubscriptionUC struct {
	got []domain.SubscribeInput
}

func (r *recordingSubscriptionUC) Subscribe(_ context.Context, input domain.SubscribeInput) error {
	r.got = append(r.got, input)
	return nil
}
