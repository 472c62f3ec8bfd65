// Package storage persists the job ledger: one row per enrichment job plus
// its status transitions, adapted from the teacher's contracts/status_changes
// tables (internal/storage/storage.go) onto job lifecycle tracking instead of
// scraped-contract tracking.
package storage

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// Storage handles the job-ledger database.
type Storage struct {
	db *sql.DB
}

// Job is one row of the ledger: a single enrichment run for one user.
type Job struct {
	ID           string
	UserID       string
	OriginalName string
	JobType      string
	Status       string
	RowsIn       int
	RowsEnriched int
	OutputPath   string
	CreatedAt    string
	UpdatedAt    string
}

// StatusChange records one transition of a job's Status column.
type StatusChange struct {
	ID        int    `json:"id"`
	JobID     string `json:"job_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedAt string `json:"changed_at"`
}

// NewStorage opens (creating if absent) the sqlite3 ledger at dbPath.
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("storage: ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initTables(); err != nil {
		return nil, fmt.Errorf("storage: initialize tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initTables() error {
	jobsQuery := `
	CREATE TABLE IF NOT EXISTS jobs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		original_name TEXT,
		job_type TEXT,
		status TEXT,
		rows_in INTEGER DEFAULT 0,
		rows_enriched INTEGER DEFAULT 0,
		output_path TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(jobsQuery); err != nil {
		return fmt.Errorf("create jobs table: %w", err)
	}

	statusChangesQuery := `
	CREATE TABLE IF NOT EXISTS status_changes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id TEXT NOT NULL,
		old_status TEXT,
		new_status TEXT NOT NULL,
		changed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (job_id) REFERENCES jobs (id)
	);
	`
	if _, err := s.db.Exec(statusChangesQuery); err != nil {
		return fmt.Errorf("create status_changes table: %w", err)
	}

	log.Println("storage: job ledger tables initialized")
	return nil
}

// CreateJob inserts a new job row in the "queued" status.
func (s *Storage) CreateJob(j Job) error {
	query := `
	INSERT INTO jobs (id, user_id, original_name, job_type, status, rows_in, rows_enriched, output_path)
	VALUES (?, ?, ?, ?, 'queued', 0, 0, '')
	`
	_, err := s.db.Exec(query, j.ID, j.UserID, j.OriginalName, j.JobType)
	if err != nil {
		return fmt.Errorf("storage: insert job %s: %w", j.ID, err)
	}
	return nil
}

// UpdateStatus transitions a job's status and records the change, mirroring
// the teacher's status_changes audit trail.
func (s *Storage) UpdateStatus(jobID, newStatus string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin transaction: %w", err)
	}
	defer tx.Rollback()

	var oldStatus string
	err = tx.QueryRow(`SELECT status FROM jobs WHERE id = ?`, jobID).Scan(&oldStatus)
	if err != nil {
		return fmt.Errorf("storage: lookup job %s: %w", jobID, err)
	}
	if oldStatus == newStatus {
		return tx.Commit()
	}

	if _, err := tx.Exec(`UPDATE jobs SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, newStatus, jobID); err != nil {
		return fmt.Errorf("storage: update status for job %s: %w", jobID, err)
	}
	if _, err := tx.Exec(`INSERT INTO status_changes (job_id, old_status, new_status) VALUES (?, ?, ?)`, jobID, oldStatus, newStatus); err != nil {
		return fmt.Errorf("storage: record status change for job %s: %w", jobID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit status change for job %s: %w", jobID, err)
	}
	log.Printf("storage: job %s: %s -> %s", jobID, oldStatus, newStatus)
	return nil
}

// CompleteJob records a finished job's row counts and output path, then
// transitions it to "done".
func (s *Storage) CompleteJob(jobID string, rowsIn, rowsEnriched int, outputPath string) error {
	query := `UPDATE jobs SET rows_in = ?, rows_enriched = ?, output_path = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := s.db.Exec(query, rowsIn, rowsEnriched, outputPath, jobID); err != nil {
		return fmt.Errorf("storage: complete job %s: %w", jobID, err)
	}
	return s.UpdateStatus(jobID, "done")
}

// GetJob retrieves a single job by ID.
func (s *Storage) GetJob(id string) (*Job, error) {
	query := `SELECT id, user_id, original_name, job_type, status, rows_in, rows_enriched, output_path, created_at, updated_at FROM jobs WHERE id = ?`
	var j Job
	err := s.db.QueryRow(query, id).Scan(&j.ID, &j.UserID, &j.OriginalName, &j.JobType, &j.Status, &j.RowsIn, &j.RowsEnriched, &j.OutputPath, &j.CreatedAt, &j.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get job %s: %w", id, err)
	}
	return &j, nil
}

// GetJobsForUser retrieves every job belonging to a user, most recent first.
func (s *Storage) GetJobsForUser(userID string) ([]Job, error) {
	query := `SELECT id, user_id, original_name, job_type, status, rows_in, rows_enriched, output_path, created_at, updated_at FROM jobs WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("storage: query jobs for user %s: %w", userID, err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.UserID, &j.OriginalName, &j.JobType, &j.Status, &j.RowsIn, &j.RowsEnriched, &j.OutputPath, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("storage: scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// GetStatusChanges retrieves the status history of a single job.
func (s *Storage) GetStatusChanges(jobID string) ([]StatusChange, error) {
	query := `SELECT id, job_id, old_status, new_status, changed_at FROM status_changes WHERE job_id = ? ORDER BY changed_at DESC`
	rows, err := s.db.Query(query, jobID)
	if err != nil {
		return nil, fmt.Errorf("storage: query status changes for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var changes []StatusChange
	for rows.Next() {
		var c StatusChange
		if err := rows.Scan(&c.ID, &c.JobID, &c.OldStatus, &c.NewStatus, &c.ChangedAt); err != nil {
			return nil, fmt.Errorf("storage: scan status change: %w", err)
		}
		changes = append(changes, c)
	}
	return changes, nil
}

// DeleteJob removes a job and lets its status_changes rows become orphaned,
// matching the teacher's DeleteContract (no cascading delete either).
func (s *Storage) DeleteJob(jobID string) error {
	result, err := s.db.Exec(`DELETE FROM jobs WHERE id = ?`, jobID)
	if err != nil {
		return fmt.Errorf("storage: delete job %s: %w", jobID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: rows affected for job %s: %w", jobID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("storage: job %s not found", jobID)
	}
	log.Printf("storage: job %s deleted", jobID)
	return nil
}

// JobCount returns the total number of ledger rows.
func (s *Storage) JobCount() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("storage: count jobs: %w", err)
	}
	return count, nil
}
