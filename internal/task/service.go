// Package task はタスク管理のドメインロジックを提供する。
package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/security"
)

// EventRecorder はタスクのライフサイクルイベントを記録するインターフェース。
// metrics.Collectorの部分集合として定義する。
type EventRecorder interface {
	RecordTaskCreated()
	RecordTaskCompleted()
	RecordTaskDeleted()
}

// Service はタスク管理のサービス層。
// 作成・取得・一覧・部分更新・論理削除のビジネスルールを提供する。
// 所有者チェックはサービス内で行う: 変更系の操作は操作者のユーザーIDを
// 明示的に受け取り、person_id不一致を権限エラーとして返す。
type Service struct {
	taskRepo  repository.TaskRepository
	sanitizer security.InputSanitizerService
	recorder  EventRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// recorderはnil可（テストやメトリクス無効時）。
func NewService(
	taskRepo repository.TaskRepository,
	sanitizer security.InputSanitizerService,
	recorder EventRecorder,
) *Service {
	return &Service{
		taskRepo:  taskRepo,
		sanitizer: sanitizer,
		recorder:  recorder,
	}
}

// Create は指定ユーザーのタスクを新規作成する。
// titleがトリム後に空の場合はバリデーションエラーを返す。
// タイトルはトリム・サニタイズ済みの値で保存し、completed=false、active=trueで開始する。
// 採番されたIDで再取得した保存済みレコードを返す。
func (s *Service) Create(ctx context.Context, personID, title string) (*model.Task, error) {
	cleanTitle, err := s.cleanTitle(title)
	if err != nil {
		return nil, err
	}

	saved, err := s.taskRepo.Save(ctx, &model.Task{
		PersonID:  personID,
		Title:     cleanTitle,
		Completed: false,
	})
	if err != nil {
		return nil, fmt.Errorf("タスクの保存に失敗しました: %w", err)
	}

	// 保存後の再取得: ローカルで組み立てたオブジェクトではなく、
	// 永続化されたレコードを正とする
	stored, err := s.taskRepo.FindByID(ctx, saved.EntityID)
	if err != nil {
		return nil, fmt.Errorf("タスクの再取得に失敗しました: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("保存したタスクが見つかりません: %s", saved.EntityID)
	}

	if s.recorder != nil {
		s.recorder.RecordTaskCreated()
	}

	slog.Info("タスクを作成しました",
		slog.String("task_id", stored.EntityID),
		slog.String("person_id", personID),
	)

	return stored, nil
}

// GetByID は指定IDのタスクを取得する。
// 未登録・論理削除済みのいずれも見つからないものとしてnilを返す。
func (s *Service) GetByID(ctx context.Context, entityID string) (*model.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	return task, nil
}

// ListByOwner は指定ユーザーのアクティブなタスク一覧を更新が新しい順で返す。
// 該当なしの場合はエラーではなく空スライスを返す。
func (s *Service) ListByOwner(ctx context.Context, personID string) ([]*model.Task, error) {
	tasks, err := s.taskRepo.ListByPersonIDOrdered(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("タスク一覧の取得に失敗しました: %w", err)
	}
	if tasks == nil {
		tasks = []*model.Task{}
	}
	return tasks, nil
}

// Update はタスクを部分更新する。
// titleとcompletedはそれぞれ任意だが、少なくとも一方の指定が必要。
// nilフィールドは変更せず既存の値を維持する（false等のゼロ値指定は有効な更新として扱う）。
// タスクが見つからない場合は未検出エラー、操作者が所有者でない場合は
// 対象を変更せず権限エラーを返す。
// 保存後に再取得した永続化済みレコードを返す。
func (s *Service) Update(ctx context.Context, taskID, actingPersonID string, title *string, completed *bool) (*model.Task, error) {
	if title == nil && completed == nil {
		return nil, model.NewValidationError("titleまたはcompletedのいずれかを指定してください。")
	}

	var cleanTitle string
	if title != nil {
		var err error
		cleanTitle, err = s.cleanTitle(*title)
		if err != nil {
			return nil, err
		}
	}

	existing, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewTaskNotFoundError(taskID)
	}
	if existing.PersonID != actingPersonID {
		return nil, model.NewPermissionDeniedError()
	}

	completedBefore := existing.Completed

	if title != nil {
		existing.Title = cleanTitle
	}
	if completed != nil {
		existing.Completed = *completed
	}

	if _, err := s.taskRepo.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("タスクの保存に失敗しました: %w", err)
	}

	stored, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("タスクの再取得に失敗しました: %w", err)
	}
	if stored == nil {
		return nil, model.NewTaskNotFoundError(taskID)
	}

	if s.recorder != nil && !completedBefore && stored.Completed {
		s.recorder.RecordTaskCompleted()
	}

	return stored, nil
}

// SoftDelete はタスクを論理削除する。
// active=falseを設定して保存するのみで、物理削除は行わない。
// 以後の取得・一覧からは除外される。
// 未検出・所有者不一致の扱いはUpdateと同じ。
func (s *Service) SoftDelete(ctx context.Context, taskID, actingPersonID string) error {
	existing, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return model.NewTaskNotFoundError(taskID)
	}
	if existing.PersonID != actingPersonID {
		return model.NewPermissionDeniedError()
	}

	existing.Deactivate()
	if _, err := s.taskRepo.Save(ctx, existing); err != nil {
		return fmt.Errorf("タスクの削除に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordTaskDeleted()
	}

	slog.Info("タスクを論理削除しました",
		slog.String("task_id", taskID),
		slog.String("person_id", actingPersonID),
	)

	return nil
}

// cleanTitle はタイトルをトリム・サニタイズし、結果が空の場合は
// バリデーションエラーを返す。
func (s *Service) cleanTitle(title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", model.NewValidationError("titleを空にすることはできません。")
	}

	clean := strings.TrimSpace(title)
	if s.sanitizer != nil {
		clean = s.sanitizer.SanitizeText(clean)
	}
	if clean == "" {
		return "", model.NewValidationError("titleを空にすることはできません。")
	}

	return clean, nil
}
