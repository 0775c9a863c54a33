package request

// AddItemRequest adds quantity units of a product. A missing quantity means 1.
type AddItemRequest struct {
	ProductID string `json:"productId" form:"productId" validate:"required,max=64"`
	Quantity  *int   `json:"quantity" form:"quantity"`
}

// UpdateItemRequest sets an absolute quantity; zero or less removes the line.
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" form:"quantity" validate:"required"`
}
