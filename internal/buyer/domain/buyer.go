package domain

// Buyer is a registered buyer. DocumentNumber is the natural key used
// for idempotent get-or-insert.
type Buyer struct {
	ID             string
	FirstName      string
	LastName       string
	DocumentNumber string
	Phone          string
}
