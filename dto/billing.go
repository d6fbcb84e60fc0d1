package dto

type SubscriptionRequest struct {
	PlanName    string   `json:"plan_name" binding:"required,max=255"`
	Price       *float64 `json:"price" binding:"required,min=0"`
	Description *string  `json:"description"`
	Features    []string `json:"features"`
}

// SubscriptionPatch applies only the fields that are present.
type SubscriptionPatch struct {
	PlanName    *string  `json:"plan_name" binding:"omitempty,max=255"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Description *string  `json:"description"`
	Features    []string `json:"features"`
}

type CheckoutRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type CheckoutResponse struct {
	ClientSecret string `json:"clientSecret"`
}
