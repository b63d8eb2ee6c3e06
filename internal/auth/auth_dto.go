package auth

type RegisterRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required,max=255"`
	Password   string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type AuthResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

type TokenPairResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         AuthResponse `json:"user"`
}
