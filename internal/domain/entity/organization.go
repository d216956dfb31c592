package entity

import "time"

// Organization groups users under one account for billing and settings.
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	CompanySize string    `json:"companySize"`
	Website     string    `json:"website,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
