package request

// Requests accept JSON or form-encoded bodies; both tag sets use the same names.

type RegisterRequest struct {
	Username  string `json:"username" form:"username" validate:"required,alphanum,min=3,max=50"`
	Email     string `json:"email" form:"email" validate:"required,email,max=255"`
	Password  string `json:"password" form:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" form:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" form:"lastName" validate:"max=100"`
	Phone     string `json:"phone" form:"phone" validate:"required,max=20"`
	Address   string `json:"address" form:"address" validate:"required,max=500"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}
