package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"talenthub-backend/internal/domain"
	"talenthub-backend/internal/live"
	"talenthub-backend/internal/usecase"
	"talenthub-backend/pkg/logger"
	"talenthub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) FetchAll(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) SetAdmin(ctx context.Context, id string, isAdmin bool) error {
	return m.Called(ctx, id, isAdmin).Error(0)
}
func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchAll(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchActive(ctx context.Context) ([]domain.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockJobRepo) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FetchByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FetchAllWithDetails(ctx context.Context) ([]domain.ApplicationWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ApplicationWithDetails), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID, userID string) (bool, error) {
	args := m.Called(ctx, jobID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) DeleteByJobID(ctx context.Context, jobID string) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockApplicationRepo) CountByJob(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}
func (m *MockApplicationRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Create(ctx context.Context, activity *domain.Activity) error {
	return m.Called(ctx, activity).Error(0)
}
func (m *MockActivityRepo) FetchRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func activeJob(id string) *domain.Job {
	return &domain.Job{
		ID:           id,
		ClientName:   "Acme",
		PositionName: "Backend Engineer",
		Location:     "Remote",
		TechStack:    []string{"Go"},
		Domain:       "FinTech",
		Status:       domain.JobStatusActive,
	}
}

func TestApplyToJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Duplicate application is rejected with a conflict", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, new(MockActivityRepo), live.NewHub(nil))

		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1"), nil)
		appRepo.On("CheckExists", ctx, "job1", "user1").Return(true, nil)

		_, err := uc.ApplyToJob(ctx, "user1", "job1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Inactive job cannot be applied to", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, new(MockActivityRepo), live.NewHub(nil))

		job := activeJob("job1")
		job.Status = domain.JobStatusInactive
		jobRepo.On("GetByID", ctx, "job1").Return(job, nil)

		_, err := uc.ApplyToJob(ctx, "user1", "job1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "inactive job")
	})

	t.Run("Successful apply creates pending and records activity", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		activityRepo := new(MockActivityRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, activityRepo, live.NewHub(nil))

		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1"), nil)
		appRepo.On("CheckExists", ctx, "job1", "user1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Activity")).Return(nil).Run(func(args mock.Arguments) {
			a := args.Get(1).(*domain.Activity)
			assert.Equal(t, domain.ActivityNewApplication, a.Type)
			assert.Equal(t, "New application for Backend Engineer", a.Message)
		})

		app, err := uc.ApplyToJob(ctx, "user1", "job1")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "user1", app.UserID)
		activityRepo.AssertExpectations(t)
	})

	t.Run("Activity append failure never fails the apply", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		activityRepo := new(MockActivityRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, activityRepo, live.NewHub(nil))

		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1"), nil)
		appRepo.On("CheckExists", ctx, "job1", "user1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Activity")).Return(errors.New("audit store down"))

		app, err := uc.ApplyToJob(ctx, "user1", "job1")
		assert.NoError(t, err)
		assert.NotNil(t, app)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()

	newUC := func(appRepo *MockApplicationRepo) domain.ApplicationUsecase {
		return usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), new(MockActivityRepo), live.NewHub(nil))
	}

	t.Run("Pending moves to accepted", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, "app1").Return(&domain.Application{ID: "app1", Status: domain.ApplicationStatusPending}, nil)
		appRepo.On("UpdateStatus", ctx, "app1", domain.ApplicationStatusAccepted).Return(nil)

		err := newUC(appRepo).UpdateStatus(ctx, "app1", domain.ApplicationStatusAccepted)
		assert.NoError(t, err)
		appRepo.AssertExpectations(t)
	})

	t.Run("Decided application is terminal", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, "app1").Return(&domain.Application{ID: "app1", Status: domain.ApplicationStatusAccepted}, nil)

		err := newUC(appRepo).UpdateStatus(ctx, "app1", domain.ApplicationStatusRejected)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already been decided")
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Pending is not a valid target status", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)

		err := newUC(appRepo).UpdateStatus(ctx, "app1", domain.ApplicationStatusPending)
		assert.Error(t, err)
		appRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestDeleteJobCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("Applications are removed before the job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewJobUsecase(jobRepo, appRepo, new(MockActivityRepo), live.NewHub(nil))

		var order []string
		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1"), nil)
		appRepo.On("DeleteByJobID", ctx, "job1").Return(int64(4), nil).Run(func(mock.Arguments) {
			order = append(order, "applications")
		})
		jobRepo.On("Delete", ctx, "job1").Return(nil).Run(func(mock.Arguments) {
			order = append(order, "job")
		})

		err := uc.DeleteJobCascade(ctx, "job1")
		assert.NoError(t, err)
		assert.Equal(t, []string{"applications", "job"}, order)
	})

	t.Run("Application delete failure leaves the job row alone", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewJobUsecase(jobRepo, appRepo, new(MockActivityRepo), live.NewHub(nil))

		jobRepo.On("GetByID", ctx, "job1").Return(activeJob("job1"), nil)
		appRepo.On("DeleteByJobID", ctx, "job1").Return(int64(0), errors.New("delete failed"))

		err := uc.DeleteJobCascade(ctx, "job1")
		assert.Error(t, err)
		jobRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Missing job is a not found", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewJobUsecase(jobRepo, appRepo, new(MockActivityRepo), live.NewHub(nil))

		jobRepo.On("GetByID", ctx, "missing").Return(nil, domain.ErrNotFound)

		err := uc.DeleteJobCascade(ctx, "missing")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found")
	})
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	newUC := func(jobRepo *MockJobRepo, activityRepo *MockActivityRepo) domain.JobUsecase {
		return usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), activityRepo, live.NewHub(nil))
	}

	t.Run("Defaults are applied before persisting", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		activityRepo := new(MockActivityRepo)
		jobRepo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Activity")).Return(nil).Run(func(args mock.Arguments) {
			a := args.Get(1).(*domain.Activity)
			assert.Equal(t, "Position: Backend Engineer was just posted", a.Message)
		})

		job := activeJob("")
		job.NumberOfPositions = 0
		err := newUC(jobRepo, activityRepo).CreateJob(ctx, "admin1", job)
		assert.NoError(t, err)
		assert.Equal(t, 1, job.NumberOfPositions)
		assert.Equal(t, domain.JobStatusActive, job.Status)
		assert.Equal(t, "admin1", job.CreatedBy)
	})

	t.Run("ExpMax below ExpMin is rejected", func(t *testing.T) {
		job := activeJob("")
		job.ExpMin = 5
		expMax := 2
		job.ExpMax = &expMax

		err := newUC(new(MockJobRepo), new(MockActivityRepo)).CreateJob(ctx, "admin1", job)
		assert.Error(t, err)
	})

	t.Run("Empty tech stack is rejected", func(t *testing.T) {
		job := activeJob("")
		job.TechStack = nil

		err := newUC(new(MockJobRepo), new(MockActivityRepo)).CreateJob(ctx, "admin1", job)
		assert.Error(t, err)
	})
}

func TestListJobsCounts(t *testing.T) {
	ctx := context.Background()

	t.Run("Derived counts come from one aggregate query", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewJobUsecase(jobRepo, appRepo, new(MockActivityRepo), live.NewHub(nil))

		jobRepo.On("FetchAll", ctx).Return([]domain.Job{{ID: "j1"}, {ID: "j2"}}, nil)
		appRepo.On("CountByJob", ctx).Return(map[string]int64{"j1": 7}, nil)

		jobs, err := uc.ListJobs(ctx)
		assert.NoError(t, err)
		assert.EqualValues(t, 7, jobs[0].TotalApplications)
		assert.EqualValues(t, 0, jobs[1].TotalApplications)
		appRepo.AssertNumberOfCalls(t, "CountByJob", 1)
	})
}

func TestSetAdmin(t *testing.T) {
	ctx := context.Background()

	newUC := func(userRepo *MockUserRepo, activityRepo *MockActivityRepo) domain.AdminUsecase {
		return usecase.NewAdminUsecase(userRepo, new(MockJobRepo), new(MockApplicationRepo), activityRepo, live.NewHub(nil))
	}

	t.Run("Self-revoke is rejected", func(t *testing.T) {
		userRepo := new(MockUserRepo)

		_, err := newUC(userRepo, new(MockActivityRepo)).SetAdmin(ctx, "admin1", "admin1", false)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own admin access")
		userRepo.AssertNotCalled(t, "SetAdmin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Granting an existing admin is a no-op", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, "user2").Return(&domain.User{ID: "user2", IsAdmin: true}, nil)

		user, err := newUC(userRepo, new(MockActivityRepo)).SetAdmin(ctx, "admin1", "user2", true)
		assert.NoError(t, err)
		assert.True(t, user.IsAdmin)
		userRepo.AssertNotCalled(t, "SetAdmin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Grant flips the flag and records the audit message", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		activityRepo := new(MockActivityRepo)
		userRepo.On("GetByID", ctx, "user2").Return(&domain.User{ID: "user2"}, nil)
		userRepo.On("SetAdmin", ctx, "user2", true).Return(nil)
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Activity")).Return(nil).Run(func(args mock.Arguments) {
			a := args.Get(1).(*domain.Activity)
			assert.Equal(t, domain.ActivityAdminGranted, a.Type)
			assert.Equal(t, "Admin status granted to user", a.Message)
		})

		user, err := newUC(userRepo, activityRepo).SetAdmin(ctx, "admin1", "user2", true)
		assert.NoError(t, err)
		assert.True(t, user.IsAdmin)
		activityRepo.AssertExpectations(t)
	})

	t.Run("Revoking another admin records the revoke message", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		activityRepo := new(MockActivityRepo)
		userRepo.On("GetByID", ctx, "user2").Return(&domain.User{ID: "user2", IsAdmin: true}, nil)
		userRepo.On("SetAdmin", ctx, "user2", false).Return(nil)
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Activity")).Return(nil).Run(func(args mock.Arguments) {
			a := args.Get(1).(*domain.Activity)
			assert.Equal(t, domain.ActivityAdminRevoked, a.Type)
		})

		user, err := newUC(userRepo, activityRepo).SetAdmin(ctx, "admin1", "user2", false)
		assert.NoError(t, err)
		assert.False(t, user.IsAdmin)
	})
}

func TestRecentActivitiesLimit(t *testing.T) {
	ctx := context.Background()

	newUC := func(activityRepo *MockActivityRepo) domain.AdminUsecase {
		return usecase.NewAdminUsecase(new(MockUserRepo), new(MockJobRepo), new(MockApplicationRepo), activityRepo, live.NewHub(nil))
	}

	t.Run("Zero limit falls back to the default", func(t *testing.T) {
		activityRepo := new(MockActivityRepo)
		activityRepo.On("FetchRecent", ctx, 10).Return([]domain.Activity{}, nil)

		_, err := newUC(activityRepo).RecentActivities(ctx, 0)
		assert.NoError(t, err)
		activityRepo.AssertExpectations(t)
	})

	t.Run("Oversized limit is capped", func(t *testing.T) {
		activityRepo := new(MockActivityRepo)
		activityRepo.On("FetchRecent", ctx, 50).Return([]domain.Activity{}, nil)

		_, err := newUC(activityRepo).RecentActivities(ctx, 500)
		assert.NoError(t, err)
		activityRepo.AssertExpectations(t)
	})
}

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()
	strPtr := func(s string) *string { return &s }

	newUC := func(userRepo *MockUserRepo, activityRepo *MockActivityRepo) domain.AuthUsecase {
		validate := validator.New()
		validation.RegisterValidators(validate)
		return usecase.NewAuthUsecase(userRepo, activityRepo, live.NewHub(nil), validate)
	}

	validUser := func() *domain.User {
		return &domain.User{
			ID:               "user1",
			Name:             "Jane Roe",
			Email:            "jane@example.com",
			PhoneNumber:      strPtr("+6281234567890"),
			LinkedinURL:      strPtr("https://www.linkedin.com/in/janeroe"),
			InterestedRoles:  strPtr("Backend Engineer"),
			ExplorationPhase: strPtr("actively_looking"),
		}
	}

	t.Run("Missing fields fail validation", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		user := validUser()
		user.PhoneNumber = nil

		err := newUC(userRepo, new(MockActivityRepo)).CreateProfile(ctx, user)
		assert.Error(t, err)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Bad LinkedIn URL fails validation", func(t *testing.T) {
		user := validUser()
		user.LinkedinURL = strPtr("https://example.com/janeroe")

		err := newUC(new(MockUserRepo), new(MockActivityRepo)).CreateProfile(ctx, user)
		assert.Error(t, err)
	})

	t.Run("Existing profile is a conflict", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, "user1").Return(validUser(), nil)

		err := newUC(userRepo, new(MockActivityRepo)).CreateProfile(ctx, validUser())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("New profile is created non-admin with a join activity", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		activityRepo := new(MockActivityRepo)
		userRepo.On("GetByID", ctx, "user1").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.False(t, u.IsAdmin)
		})
		activityRepo.On("Create", ctx, mock.AnythingOfType("*domain.Activity")).Return(nil).Run(func(args mock.Arguments) {
			a := args.Get(1).(*domain.Activity)
			assert.Equal(t, domain.ActivityNewUser, a.Type)
			assert.Equal(t, "Jane Roe joined TalentHub", a.Message)
		})

		user := validUser()
		user.IsAdmin = true // must be stripped
		err := newUC(userRepo, activityRepo).CreateProfile(ctx, user)
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})
}

func TestSyncIdentity(t *testing.T) {
	ctx := context.Background()

	newUC := func(userRepo *MockUserRepo) domain.AuthUsecase {
		return usecase.NewAuthUsecase(userRepo, new(MockActivityRepo), live.NewHub(nil), validator.New())
	}

	t.Run("Missing profile means not onboarded, not an error", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, "user1").Return(nil, domain.ErrNotFound)

		user, onboarded, err := newUC(userRepo).SyncIdentity(ctx, "user1")
		assert.NoError(t, err)
		assert.False(t, onboarded)
		assert.Nil(t, user)
	})

	t.Run("Existing profile reports onboarded", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		userRepo.On("GetByID", ctx, "user1").Return(&domain.User{ID: "user1"}, nil)

		user, onboarded, err := newUC(userRepo).SyncIdentity(ctx, "user1")
		assert.NoError(t, err)
		assert.True(t, onboarded)
		assert.Equal(t, "user1", user.ID)
	})
}

func TestImportJobs(t *testing.T) {
	ctx := context.Background()
	csvHeader := "Client Name,Position Name,Min Exp,Max Exp,Location,Tech Stack,Domain,Number of positions"

	newUC := func(jobRepo *MockJobRepo) domain.ImportUsecase {
		return usecase.NewImportUsecase(jobRepo, live.NewHub(nil), nil)
	}

	t.Run("Header mismatch rejects the whole payload", func(t *testing.T) {
		jobRepo := new(MockJobRepo)

		_, err := newUC(jobRepo).ImportJobs(ctx, "admin1", "Wrong,Header\nAcme,Backend")
		assert.Error(t, err)
		jobRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Empty payload after the header is rejected", func(t *testing.T) {
		_, err := newUC(new(MockJobRepo)).ImportJobs(ctx, "admin1", csvHeader+"\n")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no job rows")
	})

	t.Run("All rows import with the uploader recorded", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		jobRepo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil).Run(func(args mock.Arguments) {
			j := args.Get(1).(*domain.Job)
			assert.Equal(t, "admin1", j.CreatedBy)
		})

		raw := csvHeader + "\nAcme,Backend Engineer,1,,Remote,Go,FinTech,1\nGlobex,Data Engineer,3,6,Jakarta,Python,Logistics,2"
		result, err := newUC(jobRepo).ImportJobs(ctx, "admin1", raw)
		assert.NoError(t, err)
		assert.Equal(t, 2, result.Processed)
		assert.Equal(t, 2, result.Total)
		jobRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Mid-batch failure halts with a partial result", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		call := 0
		jobRepo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil).Run(func(mock.Arguments) {
			call++
		}).Times(1)
		jobRepo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(errors.New("insert failed"))

		raw := csvHeader + "\nAcme,Backend Engineer,1,,Remote,Go,FinTech,1\nGlobex,Data Engineer,3,6,Jakarta,Python,Logistics,2\nInitech,QA Engineer,0,,Remote,Cypress,SaaS,1"
		result, err := newUC(jobRepo).ImportJobs(ctx, "admin1", raw)
		assert.Error(t, err)
		assert.Equal(t, 1, result.Processed)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 1, call)
	})
}
