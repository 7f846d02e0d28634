package postgres

import (
	"fmt"

	"carebridge-backend/internal/domain"

	"gorm.io/gorm"
)

type foreignKey struct {
	table    string
	name     string
	column   string
	refTable string
	onDelete string
}

// Foreign keys are declared here rather than through gorm associations
// because the summary types share tables with the full entities. Jobs and
// their recruiter are RESTRICT so a delete racing a new application or
// assignment fails instead of cascading.
var foreignKeys = []foreignKey{
	{"workers", "fk_workers_user", "user_id", "users", "CASCADE"},
	{"recruiters", "fk_recruiters_user", "user_id", "users", "CASCADE"},
	{"jobs", "fk_jobs_category", "category_id", "job_categories", "RESTRICT"},
	{"jobs", "fk_jobs_recruiter", "recruiter_id", "users", "RESTRICT"},
	{"applications", "fk_applications_job", "job_id", "jobs", "RESTRICT"},
	{"applications", "fk_applications_worker", "worker_id", "workers", "CASCADE"},
	{"work_assignments", "fk_work_assignments_job", "job_id", "jobs", "RESTRICT"},
	{"work_assignments", "fk_work_assignments_worker", "worker_id", "workers", "CASCADE"},
	{"work_assignments", "fk_work_assignments_recruiter", "recruiter_id", "recruiters", "CASCADE"},
	{"connection_requests", "fk_connection_requests_recruiter", "recruiter_id", "recruiters", "CASCADE"},
	{"connection_requests", "fk_connection_requests_worker", "worker_id", "workers", "CASCADE"},
}

const openConnectionPairIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_connection_requests_open_pair
ON connection_requests (recruiter_id, worker_id) WHERE status <> 'CANCELLED'`

// Migrate creates or updates the schema. The connection must be opened with
// DisableForeignKeyConstraintWhenMigrating.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Worker{},
		&domain.Recruiter{},
		&domain.JobCategory{},
		&domain.Job{},
		&domain.Application{},
		&domain.WorkAssignment{},
		&domain.ConnectionRequest{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(openConnectionPairIndex).Error; err != nil {
		return fmt.Errorf("create connection request index: %w", err)
	}

	// SQLite cannot add constraints to existing tables; it is only used in tests.
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	migrator := db.Migrator()
	for _, fk := range foreignKeys {
		if migrator.HasConstraint(fk.table, fk.name) {
			continue
		}
		stmt := fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE %s",
			fk.table, fk.name, fk.column, fk.refTable, fk.onDelete,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add constraint %s: %w", fk.name, err)
		}
	}
	return nil
}
