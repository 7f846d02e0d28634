package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"carebridge-backend/internal/domain"
	"carebridge-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkAssignmentCreate(t *testing.T) {
	workerUser := &domain.UserSummary{ID: 20, FirstName: "Sam", LastName: "Carter", Email: "sam@mail.test"}
	notes := "Bring ID badge"
	input := domain.CreateWorkAssignmentInput{
		JobID:       30,
		WorkerID:    3,
		RecruiterID: 4,
		WorkDate:    time.Date(2026, 5, 4, 15, 45, 0, 0, time.FixedZone("UTC+2", 2*60*60)),
		Notes:       &notes,
	}
	midnight := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)

	setup := func() (*MockAssignmentRepo, *MockNotifier, domain.WorkAssignmentUsecase) {
		assignments := new(MockAssignmentRepo)
		jobs := new(MockJobRepo)
		workers := new(MockWorkerRepo)
		recruiters := new(MockRecruiterRepo)
		notifier := new(MockNotifier)
		jobs.On("GetByID", mock.Anything, uint(30)).Return(&domain.Job{ID: 30}, nil)
		workers.On("GetByID", mock.Anything, uint(3)).Return(&domain.Worker{ID: 3}, nil)
		recruiters.On("GetByID", mock.Anything, uint(4)).Return(&domain.Recruiter{ID: 4}, nil)
		return assignments, notifier, usecase.NewWorkAssignmentUsecase(assignments, jobs, workers, recruiters, notifier)
	}

	t.Run("Should store the calendar day and notify the worker", func(t *testing.T) {
		assignments, notifier, uc := setup()
		assignments.On("Exists", mock.Anything, uint(30), uint(3), midnight).Return(false, nil)
		assignments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.WorkAssignment) bool {
			return a.WorkDate.Equal(midnight) && a.Status == domain.AssignmentActive
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.WorkAssignment).ID = 9
		})
		assignments.On("GetByID", mock.Anything, uint(9)).Return(&domain.WorkAssignment{
			ID:       9,
			WorkDate: midnight,
			Status:   domain.AssignmentActive,
			Notes:    &notes,
			Job:      &domain.Job{ID: 30, Title: "Night Nurse"},
			Worker:   &domain.WorkerSummary{ID: 3, User: workerUser},
		}, nil)
		notifier.On("SendWorkAssignmentConfirmed", workerUser, mock.MatchedBy(func(n domain.WorkAssignmentNotice) bool {
			return n.JobTitle == "Night Nurse" && n.Instruction == notes && n.WorkDate != nil && n.WorkDate.Equal(midnight)
		})).Return()

		assignment, err := uc.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, uint(9), assignment.ID)
		notifier.AssertNumberOfCalls(t, "SendWorkAssignmentConfirmed", 1)
	})

	t.Run("Should keep the caller's date when the offset is ahead of UTC", func(t *testing.T) {
		assignments, notifier, uc := setup()
		tokyoMidnight := time.Date(2025, 3, 1, 0, 0, 0, 0, time.FixedZone("UTC+9", 9*60*60))
		firstOfMarch := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		assignments.On("Exists", mock.Anything, uint(30), uint(3), firstOfMarch).Return(false, nil)
		assignments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.WorkAssignment) bool {
			return a.WorkDate.Equal(firstOfMarch)
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.WorkAssignment).ID = 10
		})
		assignments.On("GetByID", mock.Anything, uint(10)).Return(&domain.WorkAssignment{ID: 10, WorkDate: firstOfMarch}, nil)

		shifted := input
		shifted.WorkDate = tokyoMidnight
		assignment, err := uc.Create(ctx, shifted)
		require.NoError(t, err)
		assert.Equal(t, firstOfMarch, assignment.WorkDate)
		assignments.AssertExpectations(t)
		notifier.AssertNotCalled(t, "SendWorkAssignmentConfirmed", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a second assignment on the same day", func(t *testing.T) {
		assignments, notifier, uc := setup()
		assignments.On("Exists", mock.Anything, uint(30), uint(3), midnight).Return(true, nil)

		_, err := uc.Create(ctx, input)
		assertAppError(t, err, http.StatusConflict, "Worker already assigned to this job on the specified date")
		assignments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "SendWorkAssignmentConfirmed", mock.Anything, mock.Anything)
	})

	t.Run("Should name the missing recruiter", func(t *testing.T) {
		assignments := new(MockAssignmentRepo)
		jobs := new(MockJobRepo)
		workers := new(MockWorkerRepo)
		recruiters := new(MockRecruiterRepo)
		jobs.On("GetByID", mock.Anything, uint(30)).Return(&domain.Job{ID: 30}, nil)
		workers.On("GetByID", mock.Anything, uint(3)).Return(&domain.Worker{ID: 3}, nil)
		recruiters.On("GetByID", mock.Anything, uint(4)).Return(nil, domain.ErrNotFound)
		uc := usecase.NewWorkAssignmentUsecase(assignments, jobs, workers, recruiters, new(MockNotifier))

		_, err := uc.Create(ctx, input)
		assertAppError(t, err, http.StatusNotFound, "Recruiter not found")
		assignments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an unknown status", func(t *testing.T) {
		_, _, uc := setup()
		_, err := uc.UpdateStatus(ctx, 9, domain.AssignmentStatus("PAUSED"))
		assertAppError(t, err, http.StatusBadRequest, "")
	})

	t.Run("Should report a missing assignment on delete", func(t *testing.T) {
		assignments, _, uc := setup()
		assignments.On("Delete", mock.Anything, uint(404)).Return(domain.ErrNotFound)

		err := uc.Delete(ctx, 404)
		assertAppError(t, err, http.StatusNotFound, "Work assignment not found")
	})
}

func TestConnectionRequestUsecase(t *testing.T) {
	owner := domain.Actor{UserID: 10, Role: domain.RoleRecruiter}
	admins := []domain.User{
		{ID: 1, Email: "a1@carebridge.test", Role: domain.RoleAdmin},
		{ID: 2, Email: "a2@carebridge.test", Role: domain.RoleAdmin},
	}
	pending := &domain.ConnectionRequest{ID: 12, RecruiterID: 4, WorkerID: 3, Status: domain.ConnectionPending}

	type deps struct {
		connections *MockConnectionRepo
		recruiters  *MockRecruiterRepo
		workers     *MockWorkerRepo
		users       *MockUserRepo
		notifier    *MockNotifier
		uc          domain.ConnectionRequestUsecase
	}
	setup := func() deps {
		d := deps{
			connections: new(MockConnectionRepo),
			recruiters:  new(MockRecruiterRepo),
			workers:     new(MockWorkerRepo),
			users:       new(MockUserRepo),
			notifier:    new(MockNotifier),
		}
		d.uc = usecase.NewConnectionRequestUsecase(d.connections, d.recruiters, d.workers, d.users, d.notifier)
		return d
	}

	t.Run("Should file a pending request and alert every admin", func(t *testing.T) {
		d := setup()
		d.recruiters.On("GetByID", mock.Anything, uint(4)).Return(&domain.Recruiter{ID: 4, UserID: 10}, nil)
		d.workers.On("GetByID", mock.Anything, uint(3)).Return(&domain.Worker{ID: 3}, nil)
		d.connections.On("ExistsOpen", mock.Anything, uint(4), uint(3)).Return(false, nil)
		d.connections.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.ConnectionRequest) bool {
			return r.Status == domain.ConnectionPending
		})).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.ConnectionRequest).ID = 12
		})
		d.connections.On("GetByID", mock.Anything, uint(12)).Return(pending, nil)
		d.users.On("ListActiveByRole", mock.Anything, domain.RoleAdmin).Return(admins, nil)
		d.notifier.On("SendNewConnectionRequest", admins, pending).Return()

		request, err := d.uc.Create(ctx, owner, domain.CreateConnectionRequestInput{RecruiterID: 4, WorkerID: 3})
		require.NoError(t, err)
		assert.Equal(t, domain.ConnectionPending, request.Status)
		d.notifier.AssertExpectations(t)
	})

	t.Run("Should forbid requests for someone else's profile", func(t *testing.T) {
		d := setup()
		d.recruiters.On("GetByID", mock.Anything, uint(4)).Return(&domain.Recruiter{ID: 4, UserID: 99}, nil)

		_, err := d.uc.Create(ctx, owner, domain.CreateConnectionRequestInput{RecruiterID: 4, WorkerID: 3})
		assertAppError(t, err, http.StatusForbidden, "")
	})

	t.Run("Should reject an open duplicate", func(t *testing.T) {
		d := setup()
		d.recruiters.On("GetByID", mock.Anything, uint(4)).Return(&domain.Recruiter{ID: 4, UserID: 10}, nil)
		d.workers.On("GetByID", mock.Anything, uint(3)).Return(&domain.Worker{ID: 3}, nil)
		d.connections.On("ExistsOpen", mock.Anything, uint(4), uint(3)).Return(true, nil)

		_, err := d.uc.Create(ctx, owner, domain.CreateConnectionRequestInput{RecruiterID: 4, WorkerID: 3})
		assertAppError(t, err, http.StatusConflict, "Connection request already exists")
	})

	t.Run("Should report a missing worker before an open duplicate", func(t *testing.T) {
		d := setup()
		d.recruiters.On("GetByID", mock.Anything, uint(4)).Return(&domain.Recruiter{ID: 4, UserID: 10}, nil)
		d.workers.On("GetByID", mock.Anything, uint(3)).Return(nil, domain.ErrNotFound)
		d.connections.On("ExistsOpen", mock.Anything, uint(4), uint(3)).Return(true, nil).Maybe()

		_, err := d.uc.Create(ctx, owner, domain.CreateConnectionRequestInput{RecruiterID: 4, WorkerID: 3})
		assertAppError(t, err, http.StatusNotFound, "Worker not found")
		d.connections.AssertNotCalled(t, "ExistsOpen", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should notify both parties on approval", func(t *testing.T) {
		d := setup()
		approved := &domain.ConnectionRequest{ID: 12, Status: domain.ConnectionApproved}
		d.connections.On("GetByID", mock.Anything, uint(12)).Return(&domain.ConnectionRequest{ID: 12, Status: domain.ConnectionPending}, nil).Once()
		d.connections.On("Update", mock.Anything, mock.Anything).Return(nil)
		d.connections.On("GetByID", mock.Anything, uint(12)).Return(approved, nil).Once()
		d.notifier.On("SendConnectionApproved", approved).Return()

		_, err := d.uc.UpdateStatus(ctx, 12, domain.UpdateConnectionStatusInput{Status: domain.ConnectionApproved})
		require.NoError(t, err)
		d.notifier.AssertNumberOfCalls(t, "SendConnectionApproved", 1)
		d.notifier.AssertNotCalled(t, "SendConnectionRejected", mock.Anything)
	})

	t.Run("Should keep admin notes on rejection", func(t *testing.T) {
		d := setup()
		notes := "Worker unavailable this month"
		d.connections.On("GetByID", mock.Anything, uint(12)).Return(&domain.ConnectionRequest{ID: 12, Status: domain.ConnectionPending}, nil).Once()
		d.connections.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.ConnectionRequest) bool {
			return r.AdminNotes != nil && *r.AdminNotes == notes && r.Status == domain.ConnectionRejected
		})).Return(nil)
		d.connections.On("GetByID", mock.Anything, uint(12)).Return(&domain.ConnectionRequest{ID: 12, Status: domain.ConnectionRejected, AdminNotes: &notes}, nil).Once()
		d.notifier.On("SendConnectionRejected", mock.AnythingOfType("*domain.ConnectionRequest")).Return()

		request, err := d.uc.UpdateStatus(ctx, 12, domain.UpdateConnectionStatusInput{Status: domain.ConnectionRejected, AdminNotes: &notes})
		require.NoError(t, err)
		assert.Equal(t, notes, *request.AdminNotes)
		d.notifier.AssertNumberOfCalls(t, "SendConnectionRejected", 1)
	})

	t.Run("Should report a missing request", func(t *testing.T) {
		d := setup()
		d.connections.On("GetByID", mock.Anything, uint(404)).Return(nil, domain.ErrNotFound)

		_, err := d.uc.UpdateStatus(ctx, 404, domain.UpdateConnectionStatusInput{Status: domain.ConnectionApproved})
		assertAppError(t, err, http.StatusNotFound, "Connection request not found")
	})
}

func TestSubscriptionUsecase(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("SendSubscriptionWelcome", "reader@mail.test", "Reader").Return()
	uc := usecase.NewSubscriptionUsecase(notifier)

	require.NoError(t, uc.Subscribe(ctx, domain.SubscribeInput{Email: " Reader@Mail.test", Name: " Reader "}))
	notifier.AssertExpectations(t)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthUsecase(t *testing.T) {
	t.Run("Should report ok with Redis disabled", func(t *testing.T) {
		status := usecase.NewHealthUsecase(fakePinger{}, nil).Check(ctx)
		assert.Equal(t, &domain.HealthStatus{Status: "ok", Database: "up", Redis: "disabled"}, status)
	})

	t.Run("Should degrade when the database is down", func(t *testing.T) {
		redisUp := func(context.Context) error { return nil }
		status := usecase.NewHealthUsecase(fakePinger{err: errors.New("refused")}, redisUp).Check(ctx)
		assert.Equal(t, "degraded", status.Status)
		assert.Equal(t, "down", status.Database)
		assert.Equal(t, "up", status.Redis)
	})

	t.Run("Should report Redis down", func(t *testing.T) {
		redisDown := func(context.Context) error { return errors.New("timeout") }
		status := usecase.NewHealthUsecase(fakePinger{}, redisDown).Check(ctx)
		assert.Equal(t, "down", status.Redis)
	})
}

func TestExportUsers(t *testing.T) {
	users := new(MockUserRepo)
	phone := "+61 400 000 000"
	users.On("List", mock.Anything, mock.MatchedBy(func(f domain.UserFilter) bool { return f.Page == 1 })).
		Return([]domain.User{
			{ID: 1, FirstName: "Sam", LastName: "Carter", Email: "sam@mail.test", Phone: &phone, Role: domain.RoleWorker, IsActive: true},
			{ID: 2, FirstName: "Ada", LastName: "Byron", Email: "ada@corp.test", Role: domain.RoleRecruiter},
		}, int64(2), nil)
	uc := usecase.NewExportUsecase(users, new(MockApplicationRepo), nopSecurityLogger())

	file, err := uc.ExportUsers(context.WithValue(ctx, domain.KeyUserID, uint(1)), domain.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, file.Rows)
	assert.Regexp(t, `^carebridge_users_\d{8}_\d{6}\.xlsx$`, file.Filename)
	users.AssertNumberOfCalls(t, "List", 1)

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Users")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "EMAIL", rows[0][3])
	assert.Equal(t, "sam@mail.test", rows[1][3])
	assert.Equal(t, "YES", rows[1][6])
	assert.Equal(t, "NO", rows[2][6])
}

func TestExportApplications(t *testing.T) {
	apps := new(MockApplicationRepo)
	apps.On("List", mock.Anything, domain.ApplicationFilter{}).Return([]domain.Application{{
		ID:     5,
		Status: domain.ApplicationAccepted,
		Job: &domain.Job{
			Title:     "Night Nurse",
			Category:  &domain.JobCategory{Name: "Nursing"},
			Recruiter: &domain.UserSummary{FirstName: "Ada", LastName: "Byron"},
		},
		Worker: &domain.WorkerSummary{User: &domain.UserSummary{FirstName: "Sam", LastName: "Carter", Email: "sam@mail.test"}},
	}}, nil)
	uc := usecase.NewExportUsecase(new(MockUserRepo), apps, nopSecurityLogger())

	file, err := uc.ExportApplications(ctx, domain.ApplicationFilter{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"5", "Night Nurse", "Nursing", "Ada Byron", "Sam Carter", "sam@mail.test", "ACCEPTED"}, rows[1][:7])
}
