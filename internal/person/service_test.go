package person

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/taskman/internal/model"
	"github.com/hitoshi/taskman/internal/security"
)

// mockPersonRepo はPersonRepositoryのインメモリ実装。
type mockPersonRepo struct {
	store     map[string]*model.Person
	saveCalls int
}

func newMockPersonRepo() *mockPersonRepo {
	return &mockPersonRepo{store: map[string]*model.Person{}}
}

func (m *mockPersonRepo) FindByID(ctx context.Context, entityID string) (*model.Person, error) {
	p, ok := m.store[entityID]
	if !ok || !p.Active {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *mockPersonRepo) Save(ctx context.Context, person *model.Person) (*model.Person, error) {
	m.saveCalls++
	if person.EntityID == "" {
		person.EntityID = "person-1"
		person.Active = true
	}
	person.Touch(time.Now())
	copied := *person
	m.store[person.EntityID] = &copied
	return person, nil
}

func seedPerson(repo *mockPersonRepo, id, first, last string) {
	repo.store[id] = &model.Person{
		Entity:    model.Entity{EntityID: id, Active: true},
		FirstName: first,
		LastName:  last,
	}
}

// 登録済みユーザーの取得を検証
func TestService_GetByID(t *testing.T) {
	repo := newMockPersonRepo()
	seedPerson(repo, "person-1", "Taro", "Yamada")
	svc := NewService(repo, security.NewInputSanitizer())

	person, err := svc.GetByID(context.Background(), "person-1")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if person == nil {
		t.Fatal("expected person to be found")
	}
	if person.FirstName != "Taro" || person.LastName != "Yamada" {
		t.Errorf("got %q %q, want Taro Yamada", person.FirstName, person.LastName)
	}
}

// 未登録IDの取得はエラーではなくnilを返すことを検証
func TestService_GetByID_NotFound(t *testing.T) {
	repo := newMockPersonRepo()
	svc := NewService(repo, security.NewInputSanitizer())

	person, err := svc.GetByID(context.Background(), "no-such-person")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if person != nil {
		t.Error("expected nil for unknown person")
	}
}

// 片方のフィールドのみ更新した場合、他方が維持されることを検証
func TestService_UpdateProfile_Partial(t *testing.T) {
	repo := newMockPersonRepo()
	seedPerson(repo, "person-1", "Taro", "Yamada")
	svc := NewService(repo, security.NewInputSanitizer())

	first := "  Jiro  "
	updated, err := svc.UpdateProfile(context.Background(), "person-1", &first, nil)
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if updated.FirstName != "Jiro" {
		t.Errorf("FirstName = %q, want trimmed %q", updated.FirstName, "Jiro")
	}
	if updated.LastName != "Yamada" {
		t.Errorf("LastName = %q, want unchanged %q", updated.LastName, "Yamada")
	}
}

// 両フィールド未指定の更新はバリデーションエラーになることを検証
func TestService_UpdateProfile_NoFields_Fails(t *testing.T) {
	repo := newMockPersonRepo()
	seedPerson(repo, "person-1", "Taro", "Yamada")
	svc := NewService(repo, security.NewInputSanitizer())

	_, err := svc.UpdateProfile(context.Background(), "person-1", nil, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Category != model.CategoryValidation {
		t.Errorf("Category = %q, want %q", apiErr.Category, model.CategoryValidation)
	}
	if repo.saveCalls != 0 {
		t.Error("failed validation must not write")
	}
}

// 指定済みフィールドが空白のみの場合はバリデーションエラーになることを検証
func TestService_UpdateProfile_BlankField_Fails(t *testing.T) {
	repo := newMockPersonRepo()
	seedPerson(repo, "person-1", "Taro", "Yamada")
	svc := NewService(repo, security.NewInputSanitizer())

	blank := "   "
	valid := "Suzuki"

	// 片方が有効でも、空白フィールドがあれば全体が失敗する
	_, err := svc.UpdateProfile(context.Background(), "person-1", &blank, &valid)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Category != model.CategoryValidation {
		t.Errorf("Category = %q, want %q", apiErr.Category, model.CategoryValidation)
	}

	// 対象は変更されていないこと
	person, _ := svc.GetByID(context.Background(), "person-1")
	if person.FirstName != "Taro" || person.LastName != "Yamada" {
		t.Errorf("profile must be unchanged, got %q %q", person.FirstName, person.LastName)
	}
}

// 未登録ユーザーの更新は未検出エラーになることを検証
func TestService_UpdateProfile_NotFound(t *testing.T) {
	repo := newMockPersonRepo()
	svc := NewService(repo, security.NewInputSanitizer())

	first := "Taro"
	_, err := svc.UpdateProfile(context.Background(), "no-such-person", &first, nil)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Category != model.CategoryNotFound {
		t.Errorf("Category = %q, want %q", apiErr.Category, model.CategoryNotFound)
	}
}

// 氏名に含まれるHTMLタグが保存前に除去されることを検証
func TestService_UpdateProfile_StripsHTML(t *testing.T) {
	repo := newMockPersonRepo()
	seedPerson(repo, "person-1", "Taro", "Yamada")
	svc := NewService(repo, security.NewInputSanitizer())

	first := `<b>Jiro</b>`
	updated, err := svc.UpdateProfile(context.Background(), "person-1", &first, nil)
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.FirstName != "Jiro" {
		t.Errorf("FirstName = %q, want %q", updated.FirstName, "Jiro")
	}
}
