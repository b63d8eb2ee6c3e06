package balance

type BalanceResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	LeaveTypeID    string `json:"leave_type_id"`
	Year           int    `json:"year"`
	TotalAllocated int    `json:"total_allocated"`
	UsedDays       int    `json:"used_days"`
	Remaining      int    `json:"remaining"`
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:             b.ID.String(),
		EmployeeID:     b.EmployeeID.String(),
		LeaveTypeID:    b.LeaveTypeID.String(),
		Year:           b.Year,
		TotalAllocated: b.TotalAllocated,
		UsedDays:       b.UsedDays,
		Remaining:      b.Remaining(),
	}
}

func mapToListResponse(balances []LeaveBalance) []BalanceResponse {
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp
}
