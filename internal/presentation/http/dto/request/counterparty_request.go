package request

// CreateCounterpartyRequest represents the create counterparty request payload
type CreateCounterpartyRequest struct {
	Name     string  `json:"name" binding:"required"`
	Type     string  `json:"type" binding:"required,oneof=customer supplier"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

// UpdateCounterpartyRequest represents the update counterparty request payload
type UpdateCounterpartyRequest struct {
	Name     string  `json:"name"`
	Type     string  `json:"type" binding:"omitempty,oneof=customer supplier"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}
