// Package auth はユーザー登録・ログインとアクセストークン管理を提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/repository"
)

// ServiceConfig はauthサービスの設定。
type ServiceConfig struct {
	// BcryptCost はパスワードハッシュのコストパラメータ。
	BcryptCost int
}

// Service は登録・ログイン処理のサービス層。
// パスワードはbcryptでハッシュ化し、認証成功時にアクセストークンを発行する。
type Service struct {
	credRepo   repository.CredentialRepository
	personRepo repository.PersonRepository
	tokens     *TokenManager
	config     ServiceConfig
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	credRepo repository.CredentialRepository,
	personRepo repository.PersonRepository,
	tokens *TokenManager,
	config ServiceConfig,
) *Service {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		credRepo:   credRepo,
		personRepo: personRepo,
		tokens:     tokens,
		config:     config,
	}
}

// Signup は新規ユーザーを登録し、アクセストークンを発行する。
// メールアドレス・パスワードが空の場合はバリデーションエラー、
// メールアドレスが登録済みの場合は重複エラーを返す。
func (s *Service) Signup(ctx context.Context, email, password, firstName, lastName string) (*model.Person, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", model.NewValidationError("emailを空にすることはできません。")
	}
	if password == "" {
		return nil, "", model.NewValidationError("passwordを空にすることはできません。")
	}

	existing, err := s.credRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("ログイン情報の取得に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, "", model.NewDuplicateEmailError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.config.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	person, err := s.personRepo.Save(ctx, &model.Person{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	})
	if err != nil {
		return nil, "", fmt.Errorf("ユーザーの保存に失敗しました: %w", err)
	}

	if _, err := s.credRepo.Save(ctx, &model.Credential{
		PersonID:     person.EntityID,
		Email:        email,
		PasswordHash: string(hash),
	}); err != nil {
		return nil, "", fmt.Errorf("ログイン情報の保存に失敗しました: %w", err)
	}

	token, err := s.tokens.Issue(person.EntityID)
	if err != nil {
		return nil, "", fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("ユーザーを登録しました",
		slog.String("person_id", person.EntityID),
	)

	return person, token, nil
}

// Login はメールアドレスとパスワードで認証し、アクセストークンを発行する。
// 未登録メールアドレスとパスワード不一致は区別せず、
// 同一の認証情報不一致エラーを返す。
func (s *Service) Login(ctx context.Context, email, password string) (*model.Person, string, error) {
	cred, err := s.credRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, "", fmt.Errorf("ログイン情報の取得に失敗しました: %w", err)
	}
	if cred == nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	person, err := s.personRepo.FindByID(ctx, cred.PersonID)
	if err != nil {
		return nil, "", fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if person == nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(person.EntityID)
	if err != nil {
		return nil, "", fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	return person, token, nil
}

// VerifyToken はアクセストークンを検証し、ユーザーIDを返す。
// ミドルウェアからの利用を想定している。
func (s *Service) VerifyToken(tokenString string) (string, error) {
	return s.tokens.Verify(tokenString)
}
