package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/vholenko/it-task-manager/internal/models"
)

// AddIndexes creates the indexes the listing and delete-policy queries lean on.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model  interface{}
		name   string
		column string
	}{
		// Task listing filters and orderings
		{&models.Task{}, "idx_tasks_deadline", "deadline"},
		{&models.Task{}, "idx_tasks_priority", "priority"},
		{&models.Task{}, "idx_tasks_is_completed", "is_completed"},
		{&models.Task{}, "idx_tasks_task_type_id", "task_type_id"},

		// Worker listing and the position restrict-on-delete check
		{&models.Worker{}, "idx_workers_position_id", "position_id"},

		// Assignment lookups from either side
		{&models.TaskAssignment{}, "idx_task_assignments_task_id", "task_id"},
		{&models.TaskAssignment{}, "idx_task_assignments_worker_id", "worker_id"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.column)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, stmt.Schema.Table, idx.column)
	}

	return nil
}
