package leavetype

type CreateLeaveTypeRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	MaxDays         int    `json:"max_days" binding:"required,gt=0"`
	ExcludeWeekends *bool  `json:"exclude_weekends"`
}

type UpdateLeaveTypeRequest struct {
	Description string `json:"description"`
	MaxDays     int    `json:"max_days" binding:"required,gt=0"`
	IsActive    *bool  `json:"is_active" binding:"required"`
}

type LeaveTypeResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	MaxDays         int    `json:"max_days"`
	ExcludeWeekends bool   `json:"exclude_weekends"`
	IsActive        bool   `json:"is_active"`
}
