package repository

import (
	"testing"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// PostgresTaskRepoはTaskRepositoryインターフェースを満たすことを検証
func TestPostgresTaskRepo_ImplementsInterface(t *testing.T) {
	var _ TaskRepository = (*PostgresTaskRepo)(nil)
}

// PostgresPersonRepoはPersonRepositoryインターフェースを満たすことを検証
func TestPostgresPersonRepo_ImplementsInterface(t *testing.T) {
	var _ PersonRepository = (*PostgresPersonRepo)(nil)
}

// PostgresCredentialRepoはCredentialRepositoryインターフェースを満たすことを検証
func TestPostgresCredentialRepo_ImplementsInterface(t *testing.T) {
	var _ CredentialRepository = (*PostgresCredentialRepo)(nil)
}

// NewPostgresTaskRepoが正しく初期化されることを検証
func TestNewPostgresTaskRepo_Initializes(t *testing.T) {
	repo := NewPostgresTaskRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresPersonRepoが正しく初期化されることを検証
func TestNewPostgresPersonRepo_Initializes(t *testing.T) {
	repo := NewPostgresPersonRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresCredentialRepoが正しく初期化されることを検証
func TestNewPostgresCredentialRepo_Initializes(t *testing.T) {
	repo := NewPostgresCredentialRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// prepareForSaveが新規レコードにID・active・タイムスタンプを設定することを検証
func TestPrepareForSave_NewEntity(t *testing.T) {
	task := &model.Task{
		PersonID: "person-1",
		Title:    "task",
	}

	prepareForSave(&task.Entity, time.Now())

	if task.EntityID == "" {
		t.Error("EntityID should be assigned")
	}
	if !task.Active {
		t.Error("Active should be true for a new record")
	}
	if task.ChangedOn.IsZero() {
		t.Error("ChangedOn should be set")
	}
}

// prepareForSaveが既存レコードのIDを変更しないことを検証
func TestPrepareForSave_ExistingEntity(t *testing.T) {
	before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	task := &model.Task{
		Entity:   model.Entity{EntityID: "task-1", Active: true, ChangedOn: before},
		PersonID: "person-1",
		Title:    "task",
	}

	now := time.Now()
	prepareForSave(&task.Entity, now)

	if task.EntityID != "task-1" {
		t.Errorf("EntityID = %q, want unchanged %q", task.EntityID, "task-1")
	}
	if !task.ChangedOn.After(before) {
		t.Errorf("ChangedOn = %v, want after %v", task.ChangedOn, before)
	}
}

// 論理削除済みレコードを保存してもactiveが復活しないことを検証
func TestPrepareForSave_KeepsDeactivated(t *testing.T) {
	task := &model.Task{
		Entity:   model.Entity{EntityID: "task-1", Active: true},
		PersonID: "person-1",
	}
	task.Deactivate()

	prepareForSave(&task.Entity, time.Now())

	if task.Active {
		t.Error("Active should stay false for a deactivated record")
	}
}
