package domain

import "time"

// CompanyDetails is a versioned issuer profile. Updating company details
// inserts a new row; the highest ID is the current version. Each invoice
// snapshots the version that was current at creation time so historical
// invoices keep the issuer details that were valid back then.
type CompanyDetails struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Telephone  string    `json:"telephone"`
	Address    string    `json:"address"`
	PostalCode string    `json:"postalCode"`
	City       string    `json:"city"`
	VATNumber  string    `json:"vatNumber"`
	IBAN       string    `json:"iban"`
	KVK        string    `json:"kvk"`
	DateAdded  time.Time `json:"dateAdded"`
}
