package repository

import (
	"database/sql"
	"fmt"

	"github.com/nomadtrail/nomad-backend-go/internal/models"
	"github.com/nomadtrail/nomad-backend-go/internal/presence"
)

const documentColumns = `id, doc_type, jurisdiction, label, expires_on, created_at`

// DocumentRepository handles database operations for travel documents
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List returns all documents ordered by expiry date, soonest first.
func (r *DocumentRepository) List() ([]models.TravelDocument, error) {
	rows, err := r.db.Query(`SELECT ` + documentColumns + ` FROM travel_documents ORDER BY expires_on ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []models.TravelDocument
	for rows.Next() {
		var d models.TravelDocument
		if err := rows.Scan(&d.ID, &d.DocType, &d.Jurisdiction, &d.Label, &d.ExpiresOn, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// ExpiringBefore returns documents expiring on or before the cutoff date.
func (r *DocumentRepository) ExpiringBefore(cutoff presence.Date) ([]models.TravelDocument, error) {
	rows, err := r.db.Query(
		`SELECT `+documentColumns+` FROM travel_documents WHERE expires_on <= ? ORDER BY expires_on ASC`,
		cutoff.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring documents: %w", err)
	}
	defer rows.Close()

	var docs []models.TravelDocument
	for rows.Next() {
		var d models.TravelDocument
		if err := rows.Scan(&d.ID, &d.DocType, &d.Jurisdiction, &d.Label, &d.ExpiresOn, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Insert stores a new travel document
func (r *DocumentRepository) Insert(doc *models.TravelDocument) error {
	_, err := r.db.Exec(
		`INSERT INTO travel_documents (id, doc_type, jurisdiction, label, expires_on, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.DocType, doc.Jurisdiction, doc.Label, doc.ExpiresOn.String(), doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}
