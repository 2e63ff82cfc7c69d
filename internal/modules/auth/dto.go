package auth

type RegisterRequest struct {
	FirstName     string `json:"first_name" binding:"required" validate:"required"`
	LastName      string `json:"last_name" binding:"required" validate:"required"`
	Email         string `json:"email" binding:"required,email" validate:"required,email"`
	Password      string `json:"password" binding:"required,min=6" validate:"required,min=6"`
	Role          string `json:"role" validate:"omitempty,user_role"`
	ContactNumber string `json:"contact_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
