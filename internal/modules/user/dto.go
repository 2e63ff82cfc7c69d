package user

type UpdateUserRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	ContactNumber *string `json:"contact_number"`
	Role          *string `json:"role"`
	IsVerified    *bool   `json:"is_verified"`
}
