package domain

import (
	"strings"
	"time"
)

// Company is a simulated firm. Its financial history is a sequence of
// CompanyLedger closings, one per period, starting from the seeded period 0.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks company fields before persistence.
func (c *Company) Validate() error {
	if c.ID == "" {
		return &InvalidDecisionError{Field: "company.id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &InvalidDecisionError{Field: "company.name", Reason: "must not be empty"}
	}

	return nil
}
