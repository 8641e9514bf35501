package dto

// UpdateCompanyDetailsRequest stores a new version of the issuer profile.
// Older versions remain referenced by the invoices created under them.
type UpdateCompanyDetailsRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Telephone  string `json:"telephone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	VATNumber  string `json:"vatNumber"`
	IBAN       string `json:"iban"`
	KVK        string `json:"kvk"`
}
