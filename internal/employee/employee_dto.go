package employee

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required,max=200"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          string  `json:"phone" binding:"max=30"`
	Role           string  `json:"role" binding:"required,oneof=staff hod principal_secretary"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
	EmployeeNumber string  `json:"employee_number" binding:"omitempty,max=20"`
	HireDate       string  `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName     string  `json:"full_name" binding:"required,max=200"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone" binding:"max=30"`
	Role         string  `json:"role" binding:"required,oneof=staff hod principal_secretary"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Role           string  `json:"role"`
	DepartmentID   *string `json:"department_id,omitempty"`
	EmployeeNumber string  `json:"employee_number"`
	HireDate       string  `json:"hire_date,omitempty"`
}
