package application

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"

	SalaryPaymentBank    = "bank"
	SalaryPaymentAddress = "address"
)

type SubmitApplicationRequest struct {
	LeaveTypeID             string  `json:"leave_type_id" binding:"required,uuid"`
	Subject                 string  `json:"subject" binding:"required,max=200"`
	StartDate               string  `json:"start_date" binding:"required"`
	EndDate                 string  `json:"end_date" binding:"required"`
	LastLeaveFrom           *string `json:"last_leave_from" binding:"omitempty"`
	LastLeaveTo             *string `json:"last_leave_to" binding:"omitempty"`
	ContactInfo             string  `json:"contact_info" binding:"required,max=500"`
	SalaryPaymentPreference string  `json:"salary_payment_preference" binding:"required,oneof=bank address"`
	SalaryPaymentAddress    *string `json:"salary_payment_address" binding:"omitempty,max=500"`
	PermissionNoteCountry   *string `json:"permission_note_country" binding:"omitempty,max=100"`
	DutyCoverID             *string `json:"duty_cover_id" binding:"omitempty,uuid"`
	PersonHandlingDuties    *string `json:"person_handling_duties" binding:"omitempty,max=200"`
}

type DecideApplicationRequest struct {
	Action   string `json:"action" binding:"required,oneof=approve reject"`
	Comments string `json:"comments" binding:"max=1000"`
}

type StageResponse struct {
	Approved  *bool   `json:"approved"`
	DecidedBy *string `json:"decided_by,omitempty"`
	DecidedAt *string `json:"decided_at,omitempty"`
	Comments  *string `json:"comments,omitempty"`
}

type ApplicationResponse struct {
	ID                      string        `json:"id"`
	EmployeeID              string        `json:"employee_id"`
	LeaveTypeID             string        `json:"leave_type_id"`
	Subject                 string        `json:"subject"`
	StartDate               string        `json:"start_date"`
	EndDate                 string        `json:"end_date"`
	DaysRequested           int           `json:"days_requested"`
	LastLeaveFrom           *string       `json:"last_leave_from,omitempty"`
	LastLeaveTo             *string       `json:"last_leave_to,omitempty"`
	ContactInfo             string        `json:"contact_info"`
	SalaryPaymentPreference string        `json:"salary_payment_preference"`
	SalaryPaymentAddress    *string       `json:"salary_payment_address,omitempty"`
	PermissionNoteCountry   *string       `json:"permission_note_country,omitempty"`
	DutyCoverID             *string       `json:"duty_cover_id,omitempty"`
	PersonHandlingDuties    *string       `json:"person_handling_duties,omitempty"`
	Status                  string        `json:"status"`
	HODStage                StageResponse `json:"hod_stage"`
	PSStage                 StageResponse `json:"ps_stage"`
	CreatedAt               string        `json:"created_at"`
}

func mapToResponse(a LeaveApplication) ApplicationResponse {
	resp := ApplicationResponse{
		ID:                      a.ID.String(),
		EmployeeID:              a.EmployeeID.String(),
		LeaveTypeID:             a.LeaveTypeID.String(),
		Subject:                 a.Subject,
		StartDate:               a.StartDate.Format("2006-01-02"),
		EndDate:                 a.EndDate.Format("2006-01-02"),
		DaysRequested:           a.DaysRequested,
		ContactInfo:             a.ContactInfo,
		SalaryPaymentPreference: a.SalaryPaymentPreference,
		SalaryPaymentAddress:    a.SalaryPaymentAddress,
		PermissionNoteCountry:   a.PermissionNoteCountry,
		PersonHandlingDuties:    a.PersonHandlingDuties,
		Status:                  a.Status,
		HODStage:                mapStage(a.HODApproved, a.HODDecidedBy, a.HODDecidedAt, a.HODComments),
		PSStage:                 mapStage(a.PSApproved, a.PSDecidedBy, a.PSDecidedAt, a.PSComments),
		CreatedAt:               a.CreatedAt.Format(time.RFC3339),
	}
	if a.LastLeaveFrom != nil {
		v := a.LastLeaveFrom.Format("2006-01-02")
		resp.LastLeaveFrom = &v
	}
	if a.LastLeaveTo != nil {
		v := a.LastLeaveTo.Format("2006-01-02")
		resp.LastLeaveTo = &v
	}
	if a.DutyCoverID != nil {
		v := a.DutyCoverID.String()
		resp.DutyCoverID = &v
	}
	return resp
}

func mapStage(approved *bool, decidedBy *uuid.UUID, decidedAt *time.Time, comments *string) StageResponse {
	stage := StageResponse{Approved: approved, Comments: comments}
	if decidedBy != nil {
		v := decidedBy.String()
		stage.DecidedBy = &v
	}
	if decidedAt != nil {
		v := decidedAt.Format(time.RFC3339)
		stage.DecidedAt = &v
	}
	return stage
}

func mapToListResponse(apps []LeaveApplication) []ApplicationResponse {
	resp := make([]ApplicationResponse, len(apps))
	for i, a := range apps {
		resp[i] = mapToResponse(a)
	}
	return resp
}
