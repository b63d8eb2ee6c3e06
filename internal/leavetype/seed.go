package leavetype

// defaultLeaveTypes mirrors the statutory entitlements of the public-service
// leave policy. Working days throughout; weekends never count against these.
var defaultLeaveTypes = []LeaveType{
	{Name: "Annual Leave", Description: "30 days annual leave excluding weekends", MaxDays: 30, ExcludeWeekends: true},
	{Name: "Sick Leave", Description: "14 days sick leave excluding weekends", MaxDays: 14, ExcludeWeekends: true},
	{Name: "Maternity Leave", Description: "90 days maternity leave excluding weekends", MaxDays: 90, ExcludeWeekends: true},
	{Name: "Paternity Leave", Description: "14 days paternity leave excluding weekends", MaxDays: 14, ExcludeWeekends: true},
	{Name: "Bereavement Leave", Description: "4 days bereavement leave excluding weekends", MaxDays: 4, ExcludeWeekends: true},
	{Name: "Study Leave (Short Term)", Description: "10 working days short term study leave", MaxDays: 10, ExcludeWeekends: true},
	{Name: "Study Leave (Long Term)", Description: "502 days long term study leave excluding weekends", MaxDays: 502, ExcludeWeekends: true},
}
