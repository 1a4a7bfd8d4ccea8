// Package person はユーザープロフィール管理のドメインロジックを提供する。
package person

import (
	"context"
	"fmt"
	"strings"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
	"github.com/hitoshi/taskman/internal/security"
)

// Service はユーザープロフィール管理のサービス層。
// プロフィールの取得と部分更新のビジネスルールを提供する。
type Service struct {
	personRepo repository.PersonRepository
	sanitizer  security.InputSanitizerService
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(personRepo repository.PersonRepository, sanitizer security.InputSanitizerService) *Service {
	return &Service{
		personRepo: personRepo,
		sanitizer:  sanitizer,
	}
}

// GetByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (s *Service) GetByID(ctx context.Context, entityID string) (*model.Person, error) {
	person, err := s.personRepo.FindByID(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	return person, nil
}

// UpdateProfile はユーザーの氏名を部分更新する。
// first_nameとlast_nameはそれぞれ任意だが、少なくとも一方の指定が必要。
// 指定されたフィールドはトリム後に空であってはならない。
// nilフィールドは変更せず既存の値を維持する。
// 保存後に再取得した永続化済みレコードを返す。
func (s *Service) UpdateProfile(ctx context.Context, personID string, firstName, lastName *string) (*model.Person, error) {
	if firstName == nil && lastName == nil {
		return nil, model.NewValidationError("first_nameまたはlast_nameのいずれかを指定してください。")
	}

	cleanFirst, err := s.cleanName("first_name", firstName)
	if err != nil {
		return nil, err
	}
	cleanLast, err := s.cleanName("last_name", lastName)
	if err != nil {
		return nil, err
	}

	existing, err := s.personRepo.FindByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if existing == nil {
		return nil, model.NewPersonNotFoundError()
	}

	if firstName != nil {
		existing.FirstName = cleanFirst
	}
	if lastName != nil {
		existing.LastName = cleanLast
	}

	if _, err := s.personRepo.Save(ctx, existing); err != nil {
		return nil, fmt.Errorf("ユーザーの保存に失敗しました: %w", err)
	}

	stored, err := s.personRepo.FindByID(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの再取得に失敗しました: %w", err)
	}
	if stored == nil {
		return nil, model.NewPersonNotFoundError()
	}

	return stored, nil
}

// cleanName は指定されたフィールドをトリム・サニタイズして返す。
// nil（未指定）の場合は空文字列とnilエラーを返す。
// 指定済みかつトリム後に空の場合はバリデーションエラーを返す。
func (s *Service) cleanName(field string, value *string) (string, error) {
	if value == nil {
		return "", nil
	}
	if strings.TrimSpace(*value) == "" {
		return "", model.NewValidationError(fmt.Sprintf("%sを空にすることはできません。", field))
	}

	clean := strings.TrimSpace(*value)
	if s.sanitizer != nil {
		clean = s.sanitizer.SanitizeText(clean)
	}
	if clean == "" {
		return "", model.NewValidationError(fmt.Sprintf("%sを空にすることはできません。", field))
	}

	return clean, nil
}
