package entities

import "time"

// ClientProfile is the local record created for an institutional buyer after
// the identity provider accepts the account.
type ClientProfile struct {
	ProfileID       string
	IdentityUserID  string
	Email           string
	Phone           string
	InstitutionName string
	InstitutionType string
	TaxID           string
	Address         string
	City            string
	Country         string
	Representative  string
	CreatedAt       time.Time
}

// SellerProfile is the local record created for a field seller after the
// identity provider accepts the account and group assignment.
type SellerProfile struct {
	ProfileID      string
	IdentityUserID string
	Email          string
	Name           string
	Phone          string
	Territory      string
	CreatedAt      time.Time
}
