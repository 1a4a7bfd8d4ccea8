package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/taskman/internal/model"
)

// PersonServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type PersonServiceInterface interface {
	// GetByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	GetByID(ctx context.Context, entityID string) (*model.Person, error)
	// UpdateProfile はユーザーの氏名を部分更新する。
	// nilフィールドは変更しない。少なくとも一方の指定が必要。
	UpdateProfile(ctx context.Context, personID string, firstName, lastName *string) (*model.Person, error)
}

// PersonHandler はユーザープロフィールのHTTPハンドラー。
type PersonHandler struct {
	service PersonServiceInterface
}

// NewPersonHandler はPersonHandlerを生成する。
func NewPersonHandler(service PersonServiceInterface) *PersonHandler {
	return &PersonHandler{service: service}
}

// updatePersonRequest はプロフィール更新リクエストのボディ。
// ポインタ型により「未指定」と「空文字列」を区別する。
type updatePersonRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// GetMe は認証済みユーザー自身のプロフィールを取得する。
// トークンのクレームではなく、常にデータベースの最新レコードを返す。
// GET /person/me
func (h *PersonHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDOrUnauthorized(w, r)
	if !ok {
		return
	}

	person, err := h.service.GetByID(r.Context(), personID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if person == nil {
		writeFailureResponse(w, "ユーザーが見つかりません。")
		return
	}

	writeSuccessResponse(w, map[string]any{
		"person": toPersonResponse(person),
	})
}

// UpdateMe は認証済みユーザー自身の氏名を更新する。
// PUT /person/me
func (h *PersonHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req updatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailureResponse(w, "リクエストボディの形式が正しくありません。")
		return
	}

	person, err := h.service.UpdateProfile(r.Context(), personID, req.FirstName, req.LastName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessResponse(w, map[string]any{
		"message": "氏名を更新しました。",
		"person":  toPersonResponse(person),
	})
}
