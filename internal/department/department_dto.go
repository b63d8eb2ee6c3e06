package department

type CreateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=1000"`
	HeadID      *string `json:"head_id" binding:"omitempty,uuid"`
}

type UpdateDepartmentRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=1000"`
	HeadID      *string `json:"head_id" binding:"omitempty,uuid"`
}

type DepartmentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	HeadID      *string `json:"head_id,omitempty"`
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          dept.ID.String(),
		Name:        dept.Name,
		Description: dept.Description,
	}
	if dept.HeadID != nil {
		v := dept.HeadID.String()
		resp.HeadID = &v
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = mapToResponse(d)
	}
	return resp
}
