package dto

// UpdateProfileRequest carries partial profile updates. Pointer fields
// distinguish "not sent" from "set to empty".
type UpdateProfileRequest struct {
	Name            string  `json:"name" validate:"omitempty,max=100"`
	Email           string  `json:"email" validate:"omitempty,email"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     string  `json:"new_password" validate:"omitempty,min=6"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	City            *string `json:"city"`
	Pincode         *string `json:"pincode"`
}
