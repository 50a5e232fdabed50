package domain

import "time"

// LoanPackage is a bank's catalogue entry. Deleting a package only clears
// IsActive.
type LoanPackage struct {
	ID          string `json:"package_id"`
	BankID      string `json:"bank_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LoanPackageOffer
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PackageInput carries the mutable fields of a package.
type PackageInput struct {
	BankID      string `json:"bank_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LoanPackageOffer
}
