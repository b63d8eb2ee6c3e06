package application

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	applicationerrors "go-leave/internal/application/errors"
	"go-leave/internal/balance"
	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/employee"
	"go-leave/internal/events"
	"go-leave/internal/holiday"
	"go-leave/internal/leavetype"
	leavetypeerrors "go-leave/internal/leavetype/errors"
	kafkaoutbox "go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Directory resolves an employee's position in the approval chain.
// Implemented by the employee module.
type Directory interface {
	GetRole(ctx context.Context, employeeID string) (employee.Role, error)
}

// Renderer turns an approved application into a printable document.
type Renderer interface {
	Render(title string, lines []string) ([]byte, error)
}

//go:generate mockgen -source=application_service.go -destination=mock/application_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, employeeID string, req SubmitApplicationRequest) (ApplicationResponse, error)
	Decide(ctx context.Context, id, actorID string, req DecideApplicationRequest) (ApplicationResponse, error)
	Cancel(ctx context.Context, id, actorID string) (ApplicationResponse, error)
	GetByID(ctx context.Context, id string) (ApplicationResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]ApplicationResponse, error)
	ListPending(ctx context.Context, actorID string) ([]ApplicationResponse, error)
	RenderDocument(ctx context.Context, id string) ([]byte, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	types     leavetype.Repository
	ledger    balance.Ledger
	calendar  *holiday.Calendar
	directory Directory
	outbox    kafkaoutbox.OutboxRepository
	renderer  Renderer
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types leavetype.Repository,
	ledger balance.Ledger,
	calendar *holiday.Calendar,
	directory Directory,
	outbox kafkaoutbox.OutboxRepository,
	renderer Renderer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("application.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("application.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		types:     types,
		ledger:    ledger,
		calendar:  calendar,
		directory: directory,
		outbox:    outbox,
		renderer:  renderer,
		logger:    l,
	}
}

// Submit validates the request front to back, then files the application at
// the stage the applicant's role dictates. The balance is checked here but
// only debited on final approval.
func (s *service) Submit(ctx context.Context, employeeID string, req SubmitApplicationRequest) (ApplicationResponse, error) {
	s.logger.Debug("submit application requested",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidEmployeeID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return ApplicationResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if startDate.After(endDate) {
		return ApplicationResponse{}, applicationerrors.ErrInvalidDateRange
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if startDate.Before(today) {
		return ApplicationResponse{}, applicationerrors.ErrStartDateInPast
	}

	lt, err := s.types.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return ApplicationResponse{}, err
	}
	if !lt.IsActive {
		return ApplicationResponse{}, leavetypeerrors.ErrLeaveTypeInactive
	}

	days := s.calendar.CountWorkingDays(startDate, endDate, lt.ExcludeWeekends)
	if days == 0 {
		s.logger.Warn("submit application has no working days",
			zap.String("employee_id", employeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return ApplicationResponse{}, applicationerrors.ErrNoWorkingDays
	}

	b, err := s.ledger.Ensure(ctx, employeeID, req.LeaveTypeID, startDate.Year(), lt.MaxDays)
	if err != nil {
		s.logger.Error("submit application balance lookup failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	if !b.CanDebit(days) {
		s.logger.Warn("submit application insufficient balance",
			zap.String("employee_id", employeeID),
			zap.Int("days_requested", days),
			zap.Int("remaining", b.Remaining()),
		)
		return ApplicationResponse{}, balanceerrors.ErrInsufficientBalance
	}

	blocking, err := s.repo.ListBlockingRanges(ctx, employeeID,
		[]string{StatusPendingHOD, StatusPendingPS, StatusApproved})
	if err != nil {
		return ApplicationResponse{}, err
	}
	requested := DateRange{Start: startDate, End: endDate}
	if AnyOverlap(requested, blocking) {
		return ApplicationResponse{}, applicationerrors.ErrOverlappingApplication
	}

	var dutyCoverUUID *uuid.UUID
	if req.DutyCoverID != nil && *req.DutyCoverID != "" {
		parsed, err := uuid.Parse(*req.DutyCoverID)
		if err != nil {
			return ApplicationResponse{}, applicationerrors.ErrInvalidEmployeeID
		}
		dutyCoverUUID = &parsed

		away, err := s.repo.ListBlockingRanges(ctx, *req.DutyCoverID, []string{StatusApproved})
		if err != nil {
			return ApplicationResponse{}, err
		}
		if AnyOverlap(requested, away) {
			return ApplicationResponse{}, applicationerrors.ErrDutyCoverUnavailable
		}
	}

	role, err := s.directory.GetRole(ctx, employeeID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	var initialStatus string
	switch role {
	case employee.RoleStaff:
		initialStatus = StatusPendingHOD
	case employee.RoleHOD:
		initialStatus = StatusPendingPS
	default:
		return ApplicationResponse{}, applicationerrors.ErrUnsupportedApplicantRole
	}

	lastLeaveFrom, err := parseOptionalDate(req.LastLeaveFrom)
	if err != nil {
		return ApplicationResponse{}, err
	}
	lastLeaveTo, err := parseOptionalDate(req.LastLeaveTo)
	if err != nil {
		return ApplicationResponse{}, err
	}

	a := &LeaveApplication{
		ID:                      uuid.New(),
		EmployeeID:              employeeUUID,
		LeaveTypeID:             lt.ID,
		Subject:                 req.Subject,
		StartDate:               startDate,
		EndDate:                 endDate,
		DaysRequested:           days,
		LastLeaveFrom:           lastLeaveFrom,
		LastLeaveTo:             lastLeaveTo,
		ContactInfo:             req.ContactInfo,
		SalaryPaymentPreference: req.SalaryPaymentPreference,
		SalaryPaymentAddress:    req.SalaryPaymentAddress,
		PermissionNoteCountry:   req.PermissionNoteCountry,
		DutyCoverID:             dutyCoverUUID,
		PersonHandlingDuties:    req.PersonHandlingDuties,
		Status:                  initialStatus,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("submit application persist failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("submit application commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	s.logger.Info("submit application success",
		zap.String("application_id", a.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("status", a.Status),
		zap.Int("days_requested", days),
	)

	s.enqueueSubmitted(ctx, a)

	return mapToResponse(*a), nil
}

// Decide applies one approver's verdict. Stage gating comes from the current
// status, role pairing from the applicant's position. A principal secretary
// approval debits the ledger in the same transaction as the status change, so
// a rejected debit leaves the application where it was.
func (s *service) Decide(ctx context.Context, id, actorID string, req DecideApplicationRequest) (ApplicationResponse, error) {
	s.logger.Debug("decide application requested",
		zap.String("application_id", id),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidApplicationID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidActorID
	}
	if req.Action != ActionApprove && req.Action != ActionReject {
		return ApplicationResponse{}, applicationerrors.ErrInvalidAction
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, applicationerrors.ErrApplicationNotFound
		}
		return ApplicationResponse{}, err
	}

	var requiredRole employee.Role
	switch a.Status {
	case StatusPendingHOD:
		requiredRole = employee.RoleHOD
	case StatusPendingPS:
		requiredRole = employee.RolePrincipalSecretary
	default:
		return ApplicationResponse{}, applicationerrors.ErrWrongApprovalStage
	}

	actorRole, err := s.directory.GetRole(ctx, actorID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if actorRole != requiredRole {
		s.logger.Warn("decide application wrong stage",
			zap.String("application_id", id),
			zap.String("status", a.Status),
			zap.String("actor_role", actorRole.String()),
		)
		return ApplicationResponse{}, applicationerrors.ErrWrongApprovalStage
	}

	applicantRole, err := s.directory.GetRole(ctx, a.EmployeeID.String())
	if err != nil {
		return ApplicationResponse{}, err
	}
	if !canDecideFor(actorRole, applicantRole) {
		s.logger.Warn("decide application role mismatch",
			zap.String("application_id", id),
			zap.String("actor_role", actorRole.String()),
			zap.String("applicant_role", applicantRole.String()),
		)
		return ApplicationResponse{}, applicationerrors.ErrRoleMismatch
	}

	approved := req.Action == ActionApprove
	now := time.Now().UTC()
	var comments *string
	if req.Comments != "" {
		comments = &req.Comments
	}

	stage := a.Status
	switch stage {
	case StatusPendingHOD:
		a.HODApproved = &approved
		a.HODDecidedBy = &actorUUID
		a.HODDecidedAt = &now
		a.HODComments = comments
		if approved {
			a.Status = StatusPendingPS
		} else {
			a.Status = StatusRejected
		}
	case StatusPendingPS:
		a.PSApproved = &approved
		a.PSDecidedBy = &actorUUID
		a.PSDecidedAt = &now
		a.PSComments = comments
		if approved {
			a.Status = StatusApproved
		} else {
			a.Status = StatusRejected
		}
	}

	ok, err := qtx.UpdateDecision(ctx, a, stage)
	if err != nil {
		s.logger.Error("decide application persist failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return ApplicationResponse{}, err
	}
	if !ok {
		s.logger.Warn("decide application lost to a concurrent transition",
			zap.String("application_id", id),
			zap.String("expected_status", stage),
		)
		return ApplicationResponse{}, applicationerrors.ErrWrongApprovalStage
	}

	if a.Status == StatusApproved {
		err := s.ledger.WithTx(tx).Debit(ctx,
			a.EmployeeID.String(), a.LeaveTypeID.String(),
			a.StartDate.Year(), a.DaysRequested)
		if err != nil {
			s.logger.Warn("decide application debit failed, transition aborted",
				zap.String("application_id", id),
				zap.Int("days_requested", a.DaysRequested),
				zap.Error(err),
			)
			return ApplicationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide application commit failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return ApplicationResponse{}, err
	}

	s.logger.Info("decide application success",
		zap.String("application_id", id),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
		zap.String("status", a.Status),
	)

	s.enqueueDecided(ctx, a, actorID, stage, req.Action, req.Comments)

	return mapToResponse(*a), nil
}

// canDecideFor encodes the approval pairing: a HOD decides only staff
// applications, the principal secretary decides staff and HOD applications.
func canDecideFor(actor, applicant employee.Role) bool {
	switch actor {
	case employee.RoleHOD:
		return applicant == employee.RoleStaff
	case employee.RolePrincipalSecretary:
		return applicant == employee.RoleStaff || applicant == employee.RoleHOD
	default:
		return false
	}
}

func (s *service) Cancel(ctx context.Context, id, actorID string) (ApplicationResponse, error) {
	s.logger.Debug("cancel application requested",
		zap.String("application_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidApplicationID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel application begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, applicationerrors.ErrApplicationNotFound
		}
		return ApplicationResponse{}, err
	}
	if a.EmployeeID.String() != actorID {
		return ApplicationResponse{}, applicationerrors.ErrNotApplicant
	}
	if !a.IsPending() {
		return ApplicationResponse{}, applicationerrors.ErrNotCancellable
	}

	fromStatus := a.Status
	a.Status = StatusCancelled
	ok, err := qtx.UpdateDecision(ctx, a, fromStatus)
	if err != nil {
		s.logger.Error("cancel application persist failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return ApplicationResponse{}, err
	}
	if !ok {
		s.logger.Warn("cancel application lost to a concurrent transition",
			zap.String("application_id", id),
			zap.String("expected_status", fromStatus),
		)
		return ApplicationResponse{}, applicationerrors.ErrNotCancellable
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel application commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	s.logger.Info("cancel application success",
		zap.String("application_id", id),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(*a), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ApplicationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ApplicationResponse{}, applicationerrors.ErrInvalidApplicationID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ApplicationResponse{}, applicationerrors.ErrApplicationNotFound
		}
		return ApplicationResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]ApplicationResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, applicationerrors.ErrInvalidEmployeeID
	}

	apps, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(apps), nil
}

// ListPending returns the actor's approval queue: a HOD sees applications
// awaiting the HOD stage, the principal secretary those awaiting the PS stage.
func (s *service) ListPending(ctx context.Context, actorID string) ([]ApplicationResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, applicationerrors.ErrInvalidActorID
	}

	role, err := s.directory.GetRole(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var status string
	switch role {
	case employee.RoleHOD:
		status = StatusPendingHOD
	case employee.RolePrincipalSecretary:
		status = StatusPendingPS
	default:
		return nil, applicationerrors.ErrNotAnApprover
	}

	apps, err := s.repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(apps), nil
}

func (s *service) RenderDocument(ctx context.Context, id string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, applicationerrors.ErrInvalidApplicationID
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, applicationerrors.ErrApplicationNotFound
		}
		return nil, err
	}
	if a.Status != StatusApproved {
		return nil, applicationerrors.ErrNotApproved
	}

	lines := []string{
		fmt.Sprintf("Subject: %s", a.Subject),
		fmt.Sprintf("Applicant: %s", a.EmployeeID.String()),
		fmt.Sprintf("Period: %s to %s (%d working days)",
			a.StartDate.Format("2006-01-02"), a.EndDate.Format("2006-01-02"), a.DaysRequested),
		fmt.Sprintf("Contact while away: %s", a.ContactInfo),
		fmt.Sprintf("Salary payment: %s", a.SalaryPaymentPreference),
	}
	if a.PersonHandlingDuties != nil {
		lines = append(lines, fmt.Sprintf("Duties handled by: %s", *a.PersonHandlingDuties))
	}
	if a.HODDecidedAt != nil {
		lines = append(lines, fmt.Sprintf("Head of department approval: %s",
			a.HODDecidedAt.Format("2006-01-02")))
	}
	if a.PSDecidedAt != nil {
		lines = append(lines, fmt.Sprintf("Principal secretary approval: %s",
			a.PSDecidedAt.Format("2006-01-02")))
	}

	return s.renderer.Render("Leave Permission", lines)
}

// Outbox writes are best effort: a failure is logged, never surfaced, and
// never undoes a committed transition.
func (s *service) enqueueSubmitted(ctx context.Context, a *LeaveApplication) {
	payload, err := json.Marshal(events.LeaveSubmittedEvent{
		EventType:     "leave.submitted",
		ApplicationID: a.ID.String(),
		EmployeeID:    a.EmployeeID.String(),
		LeaveTypeID:   a.LeaveTypeID.String(),
		StartDate:     a.StartDate.Format("2006-01-02"),
		EndDate:       a.EndDate.Format("2006-01-02"),
		DaysRequested: a.DaysRequested,
		Status:        a.Status,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal submitted event failed", zap.Error(err))
		return
	}

	s.enqueue(ctx, a.ID.String(), "leave.submitted", events.LeaveSubmittedTopic, payload)
}

func (s *service) enqueueDecided(ctx context.Context, a *LeaveApplication, deciderID, stage, action, comments string) {
	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:     "leave.decided",
		ApplicationID: a.ID.String(),
		EmployeeID:    a.EmployeeID.String(),
		DeciderID:     deciderID,
		Stage:         stage,
		Action:        action,
		Status:        a.Status,
		Comments:      comments,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal decided event failed", zap.Error(err))
		return
	}

	s.enqueue(ctx, a.ID.String(), "leave.decided", events.LeaveDecidedTopic, payload)
}

func (s *service) enqueue(ctx context.Context, aggregateID, eventType, topic string, payload []byte) {
	event := kafkaoutbox.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_application",
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafkaoutbox.OutboxStatusPending,
	}
	if err := s.outbox.Create(ctx, event); err != nil {
		s.logger.Error("enqueue outbox event failed",
			zap.String("event_type", eventType),
			zap.String("aggregate_id", aggregateID),
			zap.Error(err),
		)
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, applicationerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := parseDate(*v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
