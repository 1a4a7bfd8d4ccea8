package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresCredentialRepo はPostgreSQLを使用したログイン情報リポジトリ。
type PostgresCredentialRepo struct {
	db *sql.DB
}

// NewPostgresCredentialRepo はPostgresCredentialRepoを生成する。
func NewPostgresCredentialRepo(db *sql.DB) *PostgresCredentialRepo {
	return &PostgresCredentialRepo{db: db}
}

// FindByEmail はメールアドレスでアクティブなログイン情報を検索する。
// 大文字小文字は区別しない。見つからない場合はnilを返す。
func (r *PostgresCredentialRepo) FindByEmail(ctx context.Context, email string) (*model.Credential, error) {
	cred := &model.Credential{}
	err := r.db.QueryRowContext(ctx,
		`SELECT entity_id, active, changed_on, person_id, email, password_hash
		 FROM credential WHERE lower(email) = lower($1) AND active = true`,
		email,
	).Scan(&cred.EntityID, &cred.Active, &cred.ChangedOn, &cred.PersonID, &cred.Email, &cred.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credential by email: %w", err)
	}

	return cred, nil
}

// Save はログイン情報をinsert-or-updateで保存する。
func (r *PostgresCredentialRepo) Save(ctx context.Context, credential *model.Credential) (*model.Credential, error) {
	prepareForSave(&credential.Entity, time.Now())

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO credential (entity_id, active, changed_on, person_id, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (entity_id) DO UPDATE
		 SET active = EXCLUDED.active,
		     changed_on = EXCLUDED.changed_on,
		     email = EXCLUDED.email,
		     password_hash = EXCLUDED.password_hash`,
		credential.EntityID, credential.Active, credential.ChangedOn,
		credential.PersonID, credential.Email, credential.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}

	return credential, nil
}

// compile-time interface check
var _ CredentialRepository = (*PostgresCredentialRepo)(nil)
