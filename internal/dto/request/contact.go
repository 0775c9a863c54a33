package request

type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Subject string `json:"subject" form:"subject" validate:"required,max=200"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}
