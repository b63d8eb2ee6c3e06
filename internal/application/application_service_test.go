package application_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"go-leave/internal/application"
	applicationerrors "go-leave/internal/application/errors"
	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/employee"
	"go-leave/internal/holiday"
	"go-leave/internal/leavetype"
	leavetypeerrors "go-leave/internal/leavetype/errors"
	kafkaoutbox "go-leave/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeApplicationRepository struct {
	withTxFn             func(tx *sql.Tx) application.Repository
	createFn             func(ctx context.Context, a *application.LeaveApplication) error
	findByIDFn           func(ctx context.Context, id string) (*application.LeaveApplication, error)
	findAllByEmployeeFn  func(ctx context.Context, employeeID string) ([]application.LeaveApplication, error)
	findByStatusFn       func(ctx context.Context, status string) ([]application.LeaveApplication, error)
	updateDecisionFn     func(ctx context.Context, a *application.LeaveApplication, fromStatus string) (bool, error)
	listBlockingRangesFn func(ctx context.Context, employeeID string, statuses []string) ([]application.DateRange, error)
}

func (f *fakeApplicationRepository) WithTx(tx *sql.Tx) application.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeApplicationRepository) Create(ctx context.Context, a *application.LeaveApplication) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeApplicationRepository) FindByID(ctx context.Context, id string) (*application.LeaveApplication, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeApplicationRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]application.LeaveApplication, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

func (f *fakeApplicationRepository) FindByStatus(ctx context.Context, status string) ([]application.LeaveApplication, error) {
	if f.findByStatusFn != nil {
		return f.findByStatusFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeApplicationRepository) UpdateDecision(ctx context.Context, a *application.LeaveApplication, fromStatus string) (bool, error) {
	if f.updateDecisionFn != nil {
		return f.updateDecisionFn(ctx, a, fromStatus)
	}
	return true, nil
}

func (f *fakeApplicationRepository) ListBlockingRanges(ctx context.Context, employeeID string, statuses []string) ([]application.DateRange, error) {
	if f.listBlockingRangesFn != nil {
		return f.listBlockingRangesFn(ctx, employeeID, statuses)
	}
	return nil, nil
}

type fakeLeaveTypeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository { return f }
func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}
func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]leavetype.LeaveType, error) {
	return nil, nil
}
func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveTypeRepository) FindByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}

type fakeLedger struct {
	withTxCalled bool
	ensureFn     func(ctx context.Context, employeeID, leaveTypeID string, year, seedDays int) (*balance.LeaveBalance, error)
	debitFn      func(ctx context.Context, employeeID, leaveTypeID string, year, days int) error
}

func (f *fakeLedger) WithTx(tx *sql.Tx) balance.Ledger {
	f.withTxCalled = true
	return f
}

func (f *fakeLedger) Ensure(ctx context.Context, employeeID, leaveTypeID string, year, seedDays int) (*balance.LeaveBalance, error) {
	if f.ensureFn != nil {
		return f.ensureFn(ctx, employeeID, leaveTypeID, year, seedDays)
	}
	return &balance.LeaveBalance{TotalAllocated: seedDays}, nil
}

func (f *fakeLedger) Remaining(ctx context.Context, employeeID, leaveTypeID string, year int) (int, error) {
	return 0, nil
}

func (f *fakeLedger) CanDebit(ctx context.Context, employeeID, leaveTypeID string, year, days int) (bool, error) {
	return true, nil
}

func (f *fakeLedger) Debit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	if f.debitFn != nil {
		return f.debitFn(ctx, employeeID, leaveTypeID, year, days)
	}
	return nil
}

func (f *fakeLedger) Credit(ctx context.Context, employeeID, leaveTypeID string, year, days int) error {
	return nil
}

func (f *fakeLedger) GetForEmployee(ctx context.Context, employeeID string, year int) ([]balance.BalanceResponse, error) {
	return nil, nil
}

type fakeDirectory struct {
	roles map[string]employee.Role
}

func (f *fakeDirectory) GetRole(ctx context.Context, employeeID string) (employee.Role, error) {
	role, ok := f.roles[employeeID]
	if !ok {
		return "", fmt.Errorf("employee not found: %s", employeeID)
	}
	return role, nil
}

type fakeOutbox struct {
	events []kafkaoutbox.OutboxEvent
	fail   bool
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafkaoutbox.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafkaoutbox.OutboxEvent) error {
	if f.fail {
		return fmt.Errorf("outbox unavailable")
	}
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafkaoutbox.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error                 { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fakeRenderer struct {
	title string
	lines []string
}

func (f *fakeRenderer) Render(title string, lines []string) ([]byte, error) {
	f.title = title
	f.lines = lines
	return []byte("%PDF-1.4 fake"), nil
}

type workflowDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   application.Service
	repo      *fakeApplicationRepository
	types     *fakeLeaveTypeRepository
	ledger    *fakeLedger
	directory *fakeDirectory
	outbox    *fakeOutbox
	renderer  *fakeRenderer
}

func setupWorkflowTest(t *testing.T) *workflowDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeApplicationRepository{}
	types := &fakeLeaveTypeRepository{}
	ledger := &fakeLedger{}
	directory := &fakeDirectory{roles: map[string]employee.Role{}}
	outbox := &fakeOutbox{}
	renderer := &fakeRenderer{}

	svc := application.NewService(
		db, repo, types, ledger,
		holiday.NewCalendar(), directory, outbox, renderer,
	)

	return &workflowDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		types:     types,
		ledger:    ledger,
		directory: directory,
		outbox:    outbox,
		renderer:  renderer,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func annualLeaveType() *leavetype.LeaveType {
	return &leavetype.LeaveType{
		ID:              uuid.New(),
		Name:            "Annual Leave",
		MaxDays:         30,
		ExcludeWeekends: true,
		IsActive:        true,
	}
}

// 2030-04-01 is a Monday; the week holds no public holiday.
func submitRequest(leaveTypeID string) application.SubmitApplicationRequest {
	return application.SubmitApplicationRequest{
		LeaveTypeID:             leaveTypeID,
		Subject:                 "Annual leave",
		StartDate:               "2030-04-01",
		EndDate:                 "2030-04-05",
		ContactInfo:             "PO Box 1, phone 0700000000",
		SalaryPaymentPreference: application.SalaryPaymentBank,
	}
}

func TestWorkflow_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success staff starts at hod stage", func(t *testing.T) {
		d := setupWorkflowTest(t)
		employeeID := uuid.New().String()
		lt := annualLeaveType()

		d.directory.roles[employeeID] = employee.RoleStaff
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Submit(ctx, employeeID, submitRequest(lt.ID.String()))

		assert.NoError(t, err)
		assert.Equal(t, application.StatusPendingHOD, resp.Status)
		assert.Equal(t, 5, resp.DaysRequested)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
		assert.Len(t, d.outbox.events, 1)
		assert.Equal(t, "leave.submitted", d.outbox.events[0].EventType)
	})

	t.Run("success hod starts at ps stage", func(t *testing.T) {
		d := setupWorkflowTest(t)
		employeeID := uuid.New().String()
		lt := annualLeaveType()

		d.directory.roles[employeeID] = employee.RoleHOD
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Submit(ctx, employeeID, submitRequest(lt.ID.String()))

		assert.NoError(t, err)
		assert.Equal(t, application.StatusPendingPS, resp.Status)
	})

	t.Run("success outbox failure does not fail submission", func(t *testing.T) {
		d := setupWorkflowTest(t)
		employeeID := uuid.New().String()
		lt := annualLeaveType()

		d.directory.roles[employeeID] = employee.RoleStaff
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		d.outbox.fail = true
		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Submit(ctx, employeeID, submitRequest(lt.ID.String()))

		assert.NoError(t, err)
		assert.Equal(t, application.StatusPendingHOD, resp.Status)
	})

	t.Run("negative principal secretary cannot apply", func(t *testing.T) {
		d := setupWorkflowTest(t)
		employeeID := uuid.New().String()
		lt := annualLeaveType()

		d.directory.roles[employeeID] = employee.RolePrincipalSecretary
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}

		_, err := d.service.Submit(ctx, employeeID, submitRequest(lt.ID.String()))

		assert.ErrorIs(t, err, applicationerrors.ErrUnsupportedApplicantRole)
	})

	t.Run("negative bad date format", func(t *testing.T) {
		d := setupWorkflowTest(t)
		req := submitRequest(uuid.New().String())
		req.StartDate = "01/04/2030"

		_, err := d.service.Submit(ctx, uuid.New().String(), req)

		assert.ErrorIs(t, err, applicationerrors.ErrInvalidDateFormat)
	})

	t.Run("negative inverted range", func(t *testing.T) {
		d := setupWorkflowTest(t)
		req := submitRequest(uuid.New().String())
		req.StartDate = "2030-04-05"
		req.EndDate = "2030-04-01"

		_, err := d.service.Submit(ctx, uuid.New().String(), req)

		assert.ErrorIs(t, err, applicationerrors.ErrInvalidDateRange)
	})

	t.Run("negative start date in past", func(t *testing.T) {
		d := setupWorkflowTest(t)
		req := submitRequest(uuid.New().String())
		req.StartDate = "2020-01-06"
		req.EndDate = "2020-01-10"

		_, err := d.service.Submit(ctx, uuid.New().String(), req)

		assert.ErrorIs(t, err, applicationerrors.ErrStartDateInPast)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		d := setupWorkflowTest(t)

		_, err := d.service.Submit(ctx, uuid.New().String(), submitRequest(uuid.New().String()))

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})

	t.Run("negative inactive leave type", func(t *testing.T) {
		d := setupWorkflowTest(t)
		lt := annualLeaveType()
		lt.IsActive = false
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}

		_, err := d.service.Submit(ctx, uuid.New().String(), submitRequest(lt.ID.String()))

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeInactive)
	})

	t.Run("negative weekend only period has no working days", func(t *testing.T) {
		d := setupWorkflowTest(t)
		lt := annualLeaveType()
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}

		req := submitRequest(lt.ID.String())
		req.StartDate = "2030-04-06"
		req.EndDate = "2030-04-07"

		_, err := d.service.Submit(ctx, uuid.New().String(), req)

		assert.ErrorIs(t, err, applicationerrors.ErrNoWorkingDays)
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		d := setupWorkflowTest(t)
		employeeID := uuid.New().String()
		lt := annualLeaveType()

		d.directory.roles[employeeID] = employee.RoleStaff
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		d.ledger.ensureFn = func(ctx context.Context, employeeID, leaveTypeID string, year, seedDays int) (*balance.LeaveBalance, error) {
			return &balance.LeaveBalance{TotalAllocated: 30, UsedDays: 28}, nil
		}

		_, err := d.service.Submit(ctx, employeeID, submitRequest(lt.ID.String()))

		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
	})

	t.Run("negative overlapping own application", func(t *testing.T) {
		d := setupWorkflowTest(t)
		employeeID := uuid.New().String()
		lt := annualLeaveType()

		d.directory.roles[employeeID] = employee.RoleStaff
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		d.repo.listBlockingRangesFn = func(ctx context.Context, eid string, statuses []string) ([]application.DateRange, error) {
			assert.Equal(t, employeeID, eid)
			assert.ElementsMatch(t, statuses, []string{
				application.StatusPendingHOD, application.StatusPendingPS, application.StatusApproved,
			})
			return []application.DateRange{span("2030-04-05", "2030-04-09")}, nil
		}

		_, err := d.service.Submit(ctx, employeeID, submitRequest(lt.ID.String()))

		assert.ErrorIs(t, err, applicationerrors.ErrOverlappingApplication)
	})

	t.Run("negative duty cover away on approved leave", func(t *testing.T) {
		d := setupWorkflowTest(t)
		employeeID := uuid.New().String()
		dutyCoverID := uuid.New().String()
		lt := annualLeaveType()

		d.directory.roles[employeeID] = employee.RoleStaff
		d.types.findByIDFn = func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
			return lt, nil
		}
		d.repo.listBlockingRangesFn = func(ctx context.Context, eid string, statuses []string) ([]application.DateRange, error) {
			if eid == dutyCoverID {
				assert.Equal(t, []string{application.StatusApproved}, statuses)
				return []application.DateRange{span("2030-04-03", "2030-04-04")}, nil
			}
			return nil, nil
		}

		req := submitRequest(lt.ID.String())
		req.DutyCoverID = &dutyCoverID

		_, err := d.service.Submit(ctx, employeeID, req)

		assert.ErrorIs(t, err, applicationerrors.ErrDutyCoverUnavailable)
	})
}

func pendingApplication(status string, applicantID uuid.UUID, leaveTypeID uuid.UUID) *application.LeaveApplication {
	return &application.LeaveApplication{
		ID:                      uuid.New(),
		EmployeeID:              applicantID,
		LeaveTypeID:             leaveTypeID,
		Subject:                 "Annual leave",
		StartDate:               day("2030-04-01"),
		EndDate:                 day("2030-04-05"),
		DaysRequested:           5,
		ContactInfo:             "PO Box 1",
		SalaryPaymentPreference: application.SalaryPaymentBank,
		Status:                  status,
	}
}

func TestWorkflow_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("success hod approval advances to ps stage", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		hodID := uuid.New().String()
		a := pendingApplication(application.StatusPendingHOD, applicantID, uuid.New())

		d.directory.roles[applicantID.String()] = employee.RoleStaff
		d.directory.roles[hodID] = employee.RoleHOD
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Decide(ctx, a.ID.String(), hodID,
			application.DecideApplicationRequest{Action: application.ActionApprove, Comments: "go ahead"})

		assert.NoError(t, err)
		assert.Equal(t, application.StatusPendingPS, resp.Status)
		assert.NotNil(t, resp.HODStage.Approved)
		assert.True(t, *resp.HODStage.Approved)
		assert.Equal(t, hodID, *resp.HODStage.DecidedBy)
		assert.False(t, d.ledger.withTxCalled, "hod approval must not touch the ledger")
		assert.Len(t, d.outbox.events, 1)
	})

	t.Run("success ps approval debits inside the transaction", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		psID := uuid.New().String()
		leaveTypeID := uuid.New()
		a := pendingApplication(application.StatusPendingPS, applicantID, leaveTypeID)

		d.directory.roles[applicantID.String()] = employee.RoleStaff
		d.directory.roles[psID] = employee.RolePrincipalSecretary
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		debited := 0
		d.ledger.debitFn = func(ctx context.Context, eid, tid string, year, days int) error {
			assert.Equal(t, applicantID.String(), eid)
			assert.Equal(t, leaveTypeID.String(), tid)
			assert.Equal(t, 2030, year)
			debited = days
			return nil
		}
		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Decide(ctx, a.ID.String(), psID,
			application.DecideApplicationRequest{Action: application.ActionApprove})

		assert.NoError(t, err)
		assert.Equal(t, application.StatusApproved, resp.Status)
		assert.Equal(t, 5, debited)
		assert.True(t, d.ledger.withTxCalled)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("success rejection is terminal", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		hodID := uuid.New().String()
		a := pendingApplication(application.StatusPendingHOD, applicantID, uuid.New())

		d.directory.roles[applicantID.String()] = employee.RoleStaff
		d.directory.roles[hodID] = employee.RoleHOD
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Decide(ctx, a.ID.String(), hodID,
			application.DecideApplicationRequest{Action: application.ActionReject, Comments: "staffing"})

		assert.NoError(t, err)
		assert.Equal(t, application.StatusRejected, resp.Status)
		assert.Equal(t, "staffing", *resp.HODStage.Comments)
		assert.False(t, d.ledger.withTxCalled)
	})

	t.Run("negative failed debit aborts the approval", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		psID := uuid.New().String()
		a := pendingApplication(application.StatusPendingPS, applicantID, uuid.New())

		d.directory.roles[applicantID.String()] = employee.RoleStaff
		d.directory.roles[psID] = employee.RolePrincipalSecretary
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		d.ledger.debitFn = func(ctx context.Context, eid, tid string, year, days int) error {
			return balanceerrors.ErrInsufficientBalance
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Decide(ctx, a.ID.String(), psID,
			application.DecideApplicationRequest{Action: application.ActionApprove})

		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
		assert.Empty(t, d.outbox.events)
	})

	t.Run("negative stale status update aborts the decision", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		hodID := uuid.New().String()
		a := pendingApplication(application.StatusPendingHOD, applicantID, uuid.New())

		d.directory.roles[applicantID.String()] = employee.RoleStaff
		d.directory.roles[hodID] = employee.RoleHOD
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		d.repo.updateDecisionFn = func(ctx context.Context, a *application.LeaveApplication, fromStatus string) (bool, error) {
			assert.Equal(t, application.StatusPendingHOD, fromStatus)
			return false, nil
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Decide(ctx, a.ID.String(), hodID,
			application.DecideApplicationRequest{Action: application.ActionApprove})

		assert.ErrorIs(t, err, applicationerrors.ErrWrongApprovalStage)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
		assert.Empty(t, d.outbox.events)
	})

	t.Run("negative hod cannot decide at ps stage", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		hodID := uuid.New().String()
		a := pendingApplication(application.StatusPendingPS, applicantID, uuid.New())

		d.directory.roles[applicantID.String()] = employee.RoleStaff
		d.directory.roles[hodID] = employee.RoleHOD
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Decide(ctx, a.ID.String(), hodID,
			application.DecideApplicationRequest{Action: application.ActionApprove})

		assert.ErrorIs(t, err, applicationerrors.ErrWrongApprovalStage)
	})

	t.Run("negative staff cannot decide", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		staffID := uuid.New().String()
		a := pendingApplication(application.StatusPendingHOD, applicantID, uuid.New())

		d.directory.roles[applicantID.String()] = employee.RoleStaff
		d.directory.roles[staffID] = employee.RoleStaff
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Decide(ctx, a.ID.String(), staffID,
			application.DecideApplicationRequest{Action: application.ActionApprove})

		assert.ErrorIs(t, err, applicationerrors.ErrWrongApprovalStage)
	})

	t.Run("negative hod cannot decide another hod's application", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		hodID := uuid.New().String()
		a := pendingApplication(application.StatusPendingHOD, applicantID, uuid.New())

		d.directory.roles[applicantID.String()] = employee.RoleHOD
		d.directory.roles[hodID] = employee.RoleHOD
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Decide(ctx, a.ID.String(), hodID,
			application.DecideApplicationRequest{Action: application.ActionApprove})

		assert.ErrorIs(t, err, applicationerrors.ErrRoleMismatch)
	})

	t.Run("negative terminal application cannot be decided", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		psID := uuid.New().String()
		a := pendingApplication(application.StatusApproved, applicantID, uuid.New())

		d.directory.roles[psID] = employee.RolePrincipalSecretary
		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Decide(ctx, a.ID.String(), psID,
			application.DecideApplicationRequest{Action: application.ActionApprove})

		assert.ErrorIs(t, err, applicationerrors.ErrWrongApprovalStage)
	})

	t.Run("negative application not found", func(t *testing.T) {
		d := setupWorkflowTest(t)
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Decide(ctx, uuid.New().String(), uuid.New().String(),
			application.DecideApplicationRequest{Action: application.ActionApprove})

		assert.ErrorIs(t, err, applicationerrors.ErrApplicationNotFound)
	})

	t.Run("negative unknown action", func(t *testing.T) {
		d := setupWorkflowTest(t)

		_, err := d.service.Decide(ctx, uuid.New().String(), uuid.New().String(),
			application.DecideApplicationRequest{Action: "escalate"})

		assert.ErrorIs(t, err, applicationerrors.ErrInvalidAction)
	})
}

func TestWorkflow_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("success applicant cancels pending application", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		a := pendingApplication(application.StatusPendingHOD, applicantID, uuid.New())

		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, true)

		resp, err := d.service.Cancel(ctx, a.ID.String(), applicantID.String())

		assert.NoError(t, err)
		assert.Equal(t, application.StatusCancelled, resp.Status)
	})

	t.Run("negative stale status update aborts the cancellation", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		a := pendingApplication(application.StatusPendingHOD, applicantID, uuid.New())

		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		d.repo.updateDecisionFn = func(ctx context.Context, a *application.LeaveApplication, fromStatus string) (bool, error) {
			assert.Equal(t, application.StatusPendingHOD, fromStatus)
			assert.Equal(t, application.StatusCancelled, a.Status)
			return false, nil
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Cancel(ctx, a.ID.String(), applicantID.String())

		assert.ErrorIs(t, err, applicationerrors.ErrNotCancellable)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative only the applicant may cancel", func(t *testing.T) {
		d := setupWorkflowTest(t)
		a := pendingApplication(application.StatusPendingHOD, uuid.New(), uuid.New())

		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Cancel(ctx, a.ID.String(), uuid.New().String())

		assert.ErrorIs(t, err, applicationerrors.ErrNotApplicant)
	})

	t.Run("negative approved application cannot be cancelled", func(t *testing.T) {
		d := setupWorkflowTest(t)
		applicantID := uuid.New()
		a := pendingApplication(application.StatusApproved, applicantID, uuid.New())

		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}
		expectTx(t, d.sqlMock, false)

		_, err := d.service.Cancel(ctx, a.ID.String(), applicantID.String())

		assert.ErrorIs(t, err, applicationerrors.ErrNotCancellable)
	})
}

func TestWorkflow_ListPending(t *testing.T) {
	ctx := context.Background()

	t.Run("success hod sees the hod queue", func(t *testing.T) {
		d := setupWorkflowTest(t)
		hodID := uuid.New().String()
		d.directory.roles[hodID] = employee.RoleHOD

		var askedStatus string
		d.repo.findByStatusFn = func(ctx context.Context, status string) ([]application.LeaveApplication, error) {
			askedStatus = status
			return []application.LeaveApplication{
				*pendingApplication(application.StatusPendingHOD, uuid.New(), uuid.New()),
			}, nil
		}

		resp, err := d.service.ListPending(ctx, hodID)

		assert.NoError(t, err)
		assert.Equal(t, application.StatusPendingHOD, askedStatus)
		assert.Len(t, resp, 1)
	})

	t.Run("success ps sees the ps queue", func(t *testing.T) {
		d := setupWorkflowTest(t)
		psID := uuid.New().String()
		d.directory.roles[psID] = employee.RolePrincipalSecretary

		var askedStatus string
		d.repo.findByStatusFn = func(ctx context.Context, status string) ([]application.LeaveApplication, error) {
			askedStatus = status
			return nil, nil
		}

		_, err := d.service.ListPending(ctx, psID)

		assert.NoError(t, err)
		assert.Equal(t, application.StatusPendingPS, askedStatus)
	})

	t.Run("negative staff has no queue", func(t *testing.T) {
		d := setupWorkflowTest(t)
		staffID := uuid.New().String()
		d.directory.roles[staffID] = employee.RoleStaff

		_, err := d.service.ListPending(ctx, staffID)

		assert.ErrorIs(t, err, applicationerrors.ErrNotAnApprover)
	})
}

func TestWorkflow_RenderDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("success approved application renders", func(t *testing.T) {
		d := setupWorkflowTest(t)
		a := pendingApplication(application.StatusApproved, uuid.New(), uuid.New())

		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}

		pdf, err := d.service.RenderDocument(ctx, a.ID.String())

		assert.NoError(t, err)
		assert.NotEmpty(t, pdf)
		assert.Equal(t, "Leave Permission", d.renderer.title)
		assert.NotEmpty(t, d.renderer.lines)
	})

	t.Run("negative pending application has no document", func(t *testing.T) {
		d := setupWorkflowTest(t)
		a := pendingApplication(application.StatusPendingPS, uuid.New(), uuid.New())

		d.repo.findByIDFn = func(ctx context.Context, id string) (*application.LeaveApplication, error) {
			return a, nil
		}

		_, err := d.service.RenderDocument(ctx, a.ID.String())

		assert.ErrorIs(t, err, applicationerrors.ErrNotApproved)
	})
}
