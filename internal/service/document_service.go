package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nomadtrail/nomad-backend-go/internal/models"
	"github.com/nomadtrail/nomad-backend-go/internal/presence"
	"github.com/nomadtrail/nomad-backend-go/internal/repository"
)

// Expiry urgency cutoffs in days.
const (
	expiryDanger  = 30
	expiryWarning = 90
	expiryMonitor = 180
)

var validDocTypes = map[string]bool{
	models.DocPassport:  true,
	models.DocVisa:      true,
	models.DocPermit:    true,
	models.DocInsurance: true,
}

// DocumentService tracks expiring travel documents.
type DocumentService struct {
	repo *repository.DocumentRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(repo *repository.DocumentRepository) *DocumentService {
	return &DocumentService{repo: repo}
}

// Add validates and stores a new travel document.
func (s *DocumentService) Add(req models.CreateDocumentRequest) (*models.TravelDocument, error) {
	if !validDocTypes[req.DocType] {
		return nil, fmt.Errorf("unknown document type %q", req.DocType)
	}
	expires, err := presence.ParseDate(req.ExpiresOn)
	if err != nil {
		return nil, err
	}

	doc := &models.TravelDocument{
		ID:           uuid.NewString(),
		DocType:      req.DocType,
		Jurisdiction: req.Jurisdiction,
		Label:        req.Label,
		ExpiresOn:    expires,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Statuses returns the expiry view of every document as of ref.
func (s *DocumentService) Statuses(ref presence.Date) ([]models.DocumentStatus, error) {
	docs, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	statuses := make([]models.DocumentStatus, 0, len(docs))
	for _, doc := range docs {
		statuses = append(statuses, documentStatus(doc, ref))
	}
	return statuses, nil
}

// Expiring returns documents that expire within the given number of days.
func (s *DocumentService) Expiring(ref presence.Date, withinDays int) ([]models.DocumentStatus, error) {
	docs, err := s.repo.ExpiringBefore(ref.AddDays(withinDays))
	if err != nil {
		return nil, err
	}
	statuses := make([]models.DocumentStatus, 0, len(docs))
	for _, doc := range docs {
		statuses = append(statuses, documentStatus(doc, ref))
	}
	return statuses, nil
}

func documentStatus(doc models.TravelDocument, ref presence.Date) models.DocumentStatus {
	days := ref.DaysUntil(doc.ExpiresOn)

	st := models.DocumentStatus{
		Document:        doc,
		DaysUntilExpiry: days,
		Expired:         days < 0,
	}
	switch {
	case days < 0:
		st.Urgency = presence.TierCritical
	case days <= expiryDanger:
		st.Urgency = presence.TierDanger
	case days <= expiryWarning:
		st.Urgency = presence.TierWarning
	case days <= expiryMonitor:
		st.Urgency = presence.TierMonitor
	default:
		st.Urgency = presence.TierSafe
	}
	return st
}
