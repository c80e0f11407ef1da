package models

import (
	"time"

	"github.com/nomadtrail/nomad-backend-go/internal/presence"
)

// Document types tracked for expiry.
const (
	DocPassport  = "passport"
	DocVisa      = "visa"
	DocPermit    = "permit"
	DocInsurance = "insurance"
)

// TravelDocument is an expiring credential (passport, visa, residence
// permit, insurance policy).
type TravelDocument struct {
	ID           string        `json:"id" db:"id"`
	DocType      string        `json:"docType" db:"doc_type"`
	Jurisdiction string        `json:"jurisdictionId,omitempty" db:"jurisdiction"`
	Label        string        `json:"label,omitempty" db:"label"`
	ExpiresOn    presence.Date `json:"expiresOn" db:"expires_on"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
}

// DocumentStatus is the derived expiry view of one document.
type DocumentStatus struct {
	Document        TravelDocument `json:"document"`
	DaysUntilExpiry int            `json:"daysUntilExpiry"`
	Expired         bool           `json:"expired"`
	Urgency         presence.Tier  `json:"urgency"`
}

// CreateDocumentRequest is the payload for registering a document.
type CreateDocumentRequest struct {
	DocType      string `json:"docType" binding:"required"`
	Jurisdiction string `json:"jurisdictionId"`
	Label        string `json:"label"`
	ExpiresOn    string `json:"expiresOn" binding:"required"`
}
