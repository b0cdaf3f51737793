package domain

import "strings"

const (
	StatusActive = "Active"
	StatusPaused = "Paused"

	StatusIDActive = "active"
	StatusIDPaused = "paused"
)

// AdsStatuses lists the status labels offered by the ads form.
var AdsStatuses = []string{StatusPaused, StatusActive}

// Ads is an advertisement listing. StatusID is derived from Status and is
// never taken from user input.
type Ads struct {
	ID       string `json:"id,omitempty"`
	Network  string `json:"network"`
	Link     string `json:"link"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
	StatusID string `json:"statusID"`
}

// EntityID implements the dashboard entity contract.
func (a Ads) EntityID() string { return a.ID }

// DeriveStatusID maps a status label to its tag.
func DeriveStatusID(status string) string {
	if strings.Contains(status, StatusActive) {
		return StatusIDActive
	}
	return StatusIDPaused
}

// WithDerivedStatus returns a copy whose StatusID matches Status.
func (a Ads) WithDerivedStatus() Ads {
	a.StatusID = DeriveStatusID(a.Status)
	return a
}
