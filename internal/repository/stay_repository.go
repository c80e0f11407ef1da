package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nomadtrail/nomad-backend-go/internal/database"
	"github.com/nomadtrail/nomad-backend-go/internal/models"
	"github.com/nomadtrail/nomad-backend-go/internal/presence"
)

const stayColumns = `id, jurisdiction, start_date, end_date, notes, created_at, superseded_at, superseded_by`

// StayRepository handles database operations for stay records
type StayRepository struct {
	db *sql.DB
}

// NewStayRepository creates a new stay repository
func NewStayRepository(db *sql.DB) *StayRepository {
	return &StayRepository{db: db}
}

// List retrieves stay records with filtering and pagination
func (r *StayRepository) List(filter models.StayFilter) ([]models.Stay, int64, error) {
	query := `SELECT ` + stayColumns + ` FROM stays`

	var conditions []string
	var args []interface{}

	if !filter.IncludeSuperseded {
		conditions = append(conditions, "superseded_at IS NULL")
	}
	if filter.Jurisdiction != "" {
		conditions = append(conditions, "jurisdiction = ?")
		args = append(args, filter.Jurisdiction)
	}
	if filter.From != "" {
		conditions = append(conditions, "start_date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conditions = append(conditions, "start_date <= ?")
		args = append(args, filter.To)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM stays"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stays: %w", err)
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY start_date DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query stays: %w", err)
	}
	defer rows.Close()

	var stays []models.Stay
	for rows.Next() {
		stay, err := scanStay(rows)
		if err != nil {
			return nil, 0, err
		}
		stays = append(stays, stay)
	}
	return stays, total, rows.Err()
}

// ListActive returns every non-superseded stay, oldest first. This is the
// interval history the presence engine evaluates.
func (r *StayRepository) ListActive() ([]models.Stay, error) {
	query := `SELECT ` + stayColumns + ` FROM stays WHERE superseded_at IS NULL ORDER BY start_date ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active stays: %w", err)
	}
	defer rows.Close()

	var stays []models.Stay
	for rows.Next() {
		stay, err := scanStay(rows)
		if err != nil {
			return nil, err
		}
		stays = append(stays, stay)
	}
	return stays, rows.Err()
}

// GetByID retrieves a single stay record
func (r *StayRepository) GetByID(id string) (*models.Stay, error) {
	row := r.db.QueryRow(`SELECT `+stayColumns+` FROM stays WHERE id = ?`, id)

	stay, err := scanStay(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stay: %w", err)
	}
	return &stay, nil
}

// Insert stores a new stay record
func (r *StayRepository) Insert(stay *models.Stay) error {
	var end interface{}
	if stay.EndDate != nil {
		end = stay.EndDate.String()
	}

	_, err := r.db.Exec(
		`INSERT INTO stays (id, jurisdiction, start_date, end_date, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		stay.ID, stay.Jurisdiction, stay.StartDate.String(), end, stay.Notes, stay.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stay: %w", err)
	}
	return nil
}

// Supersede marks a stay as superseded and, when a replacement is given,
// inserts it in the same transaction. History is corrected by
// removal + re-insertion, never in-place edits.
func (r *StayRepository) Supersede(id string, replacement *models.Stay) error {
	return database.Transaction(func(tx *sql.Tx) error {
		replacedBy := ""
		if replacement != nil {
			replacedBy = replacement.ID
		}

		res, err := tx.Exec(
			`UPDATE stays SET superseded_at = ?, superseded_by = ? WHERE id = ? AND superseded_at IS NULL`,
			time.Now().UTC(), replacedBy, id,
		)
		if err != nil {
			return fmt.Errorf("failed to supersede stay: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: stay %s", presence.ErrNotFound, id)
		}

		if replacement != nil {
			var end interface{}
			if replacement.EndDate != nil {
				end = replacement.EndDate.String()
			}
			if _, err := tx.Exec(
				`INSERT INTO stays (id, jurisdiction, start_date, end_date, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
				replacement.ID, replacement.Jurisdiction, replacement.StartDate.String(), end, replacement.Notes, replacement.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert replacement stay: %w", err)
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStay(row rowScanner) (models.Stay, error) {
	var s models.Stay
	var end sql.NullString
	var supersededAt sql.NullTime
	var supersededBy sql.NullString

	err := row.Scan(&s.ID, &s.Jurisdiction, &s.StartDate, &end, &s.Notes, &s.CreatedAt, &supersededAt, &supersededBy)
	if err == sql.ErrNoRows {
		return models.Stay{}, err
	}
	if err != nil {
		return models.Stay{}, fmt.Errorf("failed to scan stay: %w", err)
	}

	if end.Valid {
		d, err := presence.ParseDate(end.String)
		if err != nil {
			return models.Stay{}, fmt.Errorf("corrupt end_date for stay %s: %w", s.ID, err)
		}
		s.EndDate = &d
	}
	if supersededAt.Valid {
		t := supersededAt.Time
		s.SupersededAt = &t
	}
	if supersededBy.Valid {
		s.SupersededBy = supersededBy.String
	}
	return s, nil
}
