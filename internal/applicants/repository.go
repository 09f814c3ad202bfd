// Package applicants loads stored applicant records for the eligibility workers.
package applicants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loan-eligibility-workers/internal/eligibility"
)

// ErrNotFound is returned when no applicant row matches the id.
var ErrNotFound = errors.New("applicant not found")

// Record is an applicant row: the scoring profile plus contact details.
type Record struct {
	ID      string                       `json:"id"`
	Profile eligibility.ApplicantProfile `json:"profile"`
	Email   string                       `json:"email,omitempty"`
	Phone   string                       `json:"phone,omitempty"`
}

// Finder looks up applicants by id.
type Finder interface {
	FindByID(ctx context.Context, id string) (*Record, error)
}

const findByIDQuery = `SELECT id, monthly_income, loan_amount, credit_score, existing_loans, education_level, email, phone
FROM applicants WHERE id = $1`

// Repository reads applicants from Postgres.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Record, error) {
	var (
		rec       Record
		education string
		email     sql.NullString
		phone     sql.NullString
	)
	err := r.db.QueryRowContext(ctx, findByIDQuery, id).Scan(
		&rec.ID,
		&rec.Profile.MonthlyIncome,
		&rec.Profile.LoanAmount,
		&rec.Profile.CreditScore,
		&rec.Profile.ExistingLoans,
		&education,
		&email,
		&phone,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query applicant %s: %w", id, err)
	}

	rec.Profile.EducationLevel = eligibility.EducationLevel(education)
	rec.Email = email.String
	rec.Phone = phone.String
	return &rec, nil
}
