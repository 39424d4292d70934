package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/jinro-backend/internal/dataset"
	"github.com/stemsi/jinro-backend/internal/model"
)

// DatasetRepository reads and replaces the three record sets in PostgreSQL.
type DatasetRepository interface {
	Load(ctx context.Context) (*dataset.Store, error)
	// Import replaces every stored record with the contents of store.
	Import(ctx context.Context, store *dataset.Store) error
}

type datasetRepository struct {
	db *pgxpool.Pool
}

func NewDatasetRepository(db *pgxpool.Pool) DatasetRepository {
	return &datasetRepository{db: db}
}

func (r *datasetRepository) Load(ctx context.Context) (*dataset.Store, error) {
	unis, err := r.universities(ctx)
	if err != nil {
		return nil, &dataset.LoadError{Source: dataset.SourceUniversities, Err: err}
	}
	majors, err := r.majors(ctx)
	if err != nil {
		return nil, &dataset.LoadError{Source: dataset.SourceMajors, Err: err}
	}
	admissions, err := r.admissions(ctx)
	if err != nil {
		return nil, &dataset.LoadError{Source: dataset.SourceAdmissions, Err: err}
	}
	return dataset.New(unis, majors, admissions)
}

func (r *datasetRepository) universities(ctx context.Context) ([]model.University, error) {
	query := `
		SELECT name, location, founded_year, student_count, flagship_majors, required_grade, employment_rate
		FROM universities
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.University
	for rows.Next() {
		var u model.University
		if err := rows.Scan(&u.Name, &u.Location, &u.FoundedYear, &u.StudentCount, &u.FlagshipMajor, &u.RequiredGrade, &u.Employment); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *datasetRepository) majors(ctx context.Context) ([]model.Major, error) {
	query := `
		SELECT name, field, avg_salary, employment_rate, competencies, aptitude
		FROM majors
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Major
	for rows.Next() {
		var m model.Major
		if err := rows.Scan(&m.Name, &m.Field, &m.AvgSalary, &m.Employment, &m.Competencies, &m.Aptitude); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *datasetRepository) admissions(ctx context.Context) ([]model.AdmissionYear, error) {
	query := `SELECT year, overall_rate, four_year_rate, two_year_rate FROM admission_rates ORDER BY year ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AdmissionYear
	for rows.Next() {
		var a model.AdmissionYear
		if err := rows.Scan(&a.Year, &a.Overall, &a.FourYear, &a.TwoYear); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *datasetRepository) Import(ctx context.Context, store *dataset.Store) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE universities, majors, admission_rates`); err != nil {
		return fmt.Errorf("truncate records: %w", err)
	}

	unis := store.Universities()
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"universities"},
		[]string{"name", "location", "founded_year", "student_count", "flagship_majors", "required_grade", "employment_rate", "position"},
		pgx.CopyFromSlice(len(unis), func(i int) ([]any, error) {
			u := unis[i]
			return []any{u.Name, u.Location, u.FoundedYear, u.StudentCount, u.FlagshipMajor, u.RequiredGrade, u.Employment, i}, nil
		}),
	); err != nil {
		return fmt.Errorf("copy universities: %w", err)
	}

	majors := store.Majors()
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"majors"},
		[]string{"name", "field", "avg_salary", "employment_rate", "competencies", "aptitude", "position"},
		pgx.CopyFromSlice(len(majors), func(i int) ([]any, error) {
			m := majors[i]
			return []any{m.Name, m.Field, m.AvgSalary, m.Employment, m.Competencies, m.Aptitude, i}, nil
		}),
	); err != nil {
		return fmt.Errorf("copy majors: %w", err)
	}

	batch := &pgx.Batch{}
	for _, a := range store.AdmissionRates() {
		batch.Queue(`INSERT INTO admission_rates (year, overall_rate, four_year_rate, two_year_rate) VALUES ($1, $2, $3, $4)`,
			a.Year, a.Overall, a.FourYear, a.TwoYear)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert admission rates: %w", err)
	}

	return tx.Commit(ctx)
}
