package request

type UpdateProfileRequest struct {
	Email     string `json:"email" form:"email" validate:"required,email,max=255"`
	FirstName string `json:"firstName" form:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" form:"lastName" validate:"required,max=100"`
	Phone     string `json:"phone" form:"phone" validate:"required,max=20"`
	Address   string `json:"address" form:"address" validate:"required,max=500"`
}
