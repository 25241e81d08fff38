package http

type SignupClientRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	InstitutionName string `json:"institution_name,omitempty"`
	InstitutionType string `json:"institution_type,omitempty"`
	TaxID           string `json:"tax_id,omitempty"`
	Address         string `json:"address,omitempty"`
	City            string `json:"city,omitempty"`
	Country         string `json:"country,omitempty"`
	Representative  string `json:"representative,omitempty"`
}

type OnboardSellerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Territory string `json:"territory,omitempty"`
}

type SignupResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
