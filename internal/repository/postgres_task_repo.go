package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresTaskRepo はPostgreSQLを使用したタスクリポジトリ。
type PostgresTaskRepo struct {
	db *sql.DB
}

// NewPostgresTaskRepo はPostgresTaskRepoを生成する。
func NewPostgresTaskRepo(db *sql.DB) *PostgresTaskRepo {
	return &PostgresTaskRepo{db: db}
}

// FindByID は指定IDのアクティブなタスクを取得する。
// 論理削除済み・未登録のいずれもnilを返す。
func (r *PostgresTaskRepo) FindByID(ctx context.Context, entityID string) (*model.Task, error) {
	task := &model.Task{}
	err := r.db.QueryRowContext(ctx,
		`SELECT entity_id, active, changed_on, person_id, title, completed
		 FROM task WHERE entity_id = $1 AND active = true`,
		entityID,
	).Scan(&task.EntityID, &task.Active, &task.ChangedOn, &task.PersonID, &task.Title, &task.Completed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task by ID: %w", err)
	}

	return task, nil
}

// Save はタスクをinsert-or-updateで保存する。
// EntityIDが未採番の場合は新規IDを割り当て、changed_onを現在時刻に更新する。
// 論理削除（active = false への更新）もこのメソッドで永続化する。
func (r *PostgresTaskRepo) Save(ctx context.Context, task *model.Task) (*model.Task, error) {
	prepareForSave(&task.Entity, time.Now())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task (entity_id, active, changed_on, person_id, title, completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (entity_id) DO UPDATE
		 SET active = EXCLUDED.active,
		     changed_on = EXCLUDED.changed_on,
		     title = EXCLUDED.title,
		     completed = EXCLUDED.completed`,
		task.EntityID, task.Active, task.ChangedOn, task.PersonID, task.Title, task.Completed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return task, nil
}

// ListByPersonIDOrdered は指定ユーザーのアクティブなタスク一覧をchanged_on降順で返す。
func (r *PostgresTaskRepo) ListByPersonIDOrdered(ctx context.Context, personID string) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT entity_id, active, changed_on, person_id, title, completed
		 FROM task
		 WHERE person_id = $1 AND active = true
		 ORDER BY changed_on DESC`,
		personID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*model.Task{}
	for rows.Next() {
		task := &model.Task{}
		if err := rows.Scan(&task.EntityID, &task.Active, &task.ChangedOn, &task.PersonID, &task.Title, &task.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// compile-time interface check
var _ TaskRepository = (*PostgresTaskRepo)(nil)
