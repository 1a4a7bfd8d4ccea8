package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresPersonRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresPersonRepo struct {
	db *sql.DB
}

// NewPostgresPersonRepo はPostgresPersonRepoを生成する。
func NewPostgresPersonRepo(db *sql.DB) *PostgresPersonRepo {
	return &PostgresPersonRepo{db: db}
}

// FindByID は指定IDのアクティブなユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresPersonRepo) FindByID(ctx context.Context, entityID string) (*model.Person, error) {
	person := &model.Person{}
	err := r.db.QueryRowContext(ctx,
		`SELECT entity_id, active, changed_on, first_name, last_name
		 FROM person WHERE entity_id = $1 AND active = true`,
		entityID,
	).Scan(&person.EntityID, &person.Active, &person.ChangedOn, &person.FirstName, &person.LastName)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find person by ID: %w", err)
	}

	return person, nil
}

// Save はユーザーをinsert-or-updateで保存する。
// EntityIDが未採番の場合は新規IDを割り当て、changed_onを現在時刻に更新する。
func (r *PostgresPersonRepo) Save(ctx context.Context, person *model.Person) (*model.Person, error) {
	prepareForSave(&person.Entity, time.Now())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO person (entity_id, active, changed_on, first_name, last_name)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (entity_id) DO UPDATE
		 SET active = EXCLUDED.active,
		     changed_on = EXCLUDED.changed_on,
		     first_name = EXCLUDED.first_name,
		     last_name = EXCLUDED.last_name`,
		person.EntityID, person.Active, person.ChangedOn, person.FirstName, person.LastName,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save person: %w", err)
	}

	return person, nil
}

// compile-time interface check
var _ PersonRepository = (*PostgresPersonRepo)(nil)
