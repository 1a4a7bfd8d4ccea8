// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskman/internal/model"
)

// PersonRepository はユーザーデータの永続化インターフェース。
type PersonRepository interface {
	// FindByID は指定IDのアクティブなユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, entityID string) (*model.Person, error)

	// Save はユーザーをinsert-or-updateで保存する。
	// EntityIDが未採番の場合は新規IDを割り当て、changed_onを現在時刻に更新する。
	// 保存後のレコードを返す。
	Save(ctx context.Context, person *model.Person) (*model.Person, error)
}

// TaskRepository はタスクデータの永続化インターフェース。
type TaskRepository interface {
	// FindByID は指定IDのアクティブなタスクを取得する。
	// 論理削除済み・未登録のいずれもnilを返す（削除済みは未検出として扱う）。
	FindByID(ctx context.Context, entityID string) (*model.Task, error)

	// Save はタスクをinsert-or-updateで保存する。
	// EntityIDが未採番の場合は新規IDを割り当て、changed_onを現在時刻に更新する。
	// 保存後のレコードを返す。
	Save(ctx context.Context, task *model.Task) (*model.Task, error)

	// ListByPersonIDOrdered は指定ユーザーのアクティブなタスク一覧を
	// changed_on降順（更新が新しい順）で返す。該当なしの場合は空スライスを返す。
	ListByPersonIDOrdered(ctx context.Context, personID string) ([]*model.Task, error)
}

// CredentialRepository はログイン情報の永続化インターフェース。
type CredentialRepository interface {
	// FindByEmail はメールアドレス（大文字小文字を区別しない）でアクティブな
	// ログイン情報を検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Credential, error)

	// Save はログイン情報をinsert-or-updateで保存する。
	Save(ctx context.Context, credential *model.Credential) (*model.Credential, error)
}
