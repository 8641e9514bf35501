package domain

// Client is the party an invoice is billed to. Invoices reference clients by
// ID only; the client side never holds a materialized list of its invoices.
type Client struct {
	ID           int64  `json:"id"`
	ClientNumber int64  `json:"clientNumber"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Telephone    string `json:"telephone"`
	Address      string `json:"address"`
	PostalCode   string `json:"postalCode"`
	City         string `json:"city"`
}
