package services

import (
	"database/sql"
	"fmt"
	"time"

	"bugtrack-backend/internal/models"

	"github.com/google/uuid"
)

// BugServiceProvider defines the interface for bug services.
type BugServiceProvider interface {
	GetAllBugs() ([]models.Bug, error)
	CreateBug(title, description string) (models.Bug, error)
	UpdateBugStatus(id, status string) (models.Bug, error)
	DeleteBug(id string) error
}

// BugService provides business logic for bug tracking.
type BugService struct {
	db *sql.DB
}

// NewBugService creates a new BugService.
func NewBugService(db *sql.DB) *BugService {
	return &BugService{db: db}
}

// GetAllBugs retrieves all bugs in insertion order.
func (s *BugService) GetAllBugs() ([]models.Bug, error) {
	rows, err := s.db.Query("SELECT id, title, description, status, created_at FROM bugs")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bugs []models.Bug
	for rows.Next() {
		var bug models.Bug
		var desc sql.NullString
		if err := rows.Scan(&bug.ID, &bug.Title, &desc, &bug.Status, &bug.CreatedAt); err != nil {
			return nil, err
		}
		bug.Description = desc.String
		bugs = append(bugs, bug)
	}
	return bugs, rows.Err()
}

// CreateBug persists a new bug. The schema rejects an empty title; that
// failure is reported as a validation error, not pre-checked here.
func (s *BugService) CreateBug(title, description string) (models.Bug, error) {
	bug := models.Bug{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      models.BugStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.Exec(
		"INSERT INTO bugs(id, title, description, status, created_at) VALUES(?, ?, ?, ?, ?)",
		bug.ID, bug.Title, bug.Description, bug.Status, bug.CreatedAt,
	)
	if err != nil {
		return models.Bug{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return bug, nil
}

// UpdateBugStatus replaces the status of the matching bug and returns the
// updated record. A missing id is an explicit not-found; an out-of-enum
// status is rejected by the schema.
func (s *BugService) UpdateBugStatus(id, status string) (models.Bug, error) {
	if _, err := s.getBugByID(id); err != nil {
		return models.Bug{}, err
	}

	if _, err := s.db.Exec("UPDATE bugs SET status = ? WHERE id = ?", status, id); err != nil {
		return models.Bug{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.getBugByID(id)
}

// DeleteBug removes the matching bug.
func (s *BugService) DeleteBug(id string) error {
	res, err := s.db.Exec("DELETE FROM bugs WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BugService) getBugByID(id string) (models.Bug, error) {
	var bug models.Bug
	var desc sql.NullString
	row := s.db.QueryRow("SELECT id, title, description, status, created_at FROM bugs WHERE id = ?", id)
	err := row.Scan(&bug.ID, &bug.Title, &desc, &bug.Status, &bug.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Bug{}, ErrNotFound
		}
		return models.Bug{}, err
	}
	bug.Description = desc.String
	return bug, nil
}
