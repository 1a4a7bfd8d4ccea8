package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/taskman/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Signup は新規ユーザーを登録し、アクセストークンを発行する。
	Signup(ctx context.Context, email, password, firstName, lastName string) (*model.Person, string, error)
	// Login はメールアドレスとパスワードで認証し、アクセストークンを発行する。
	Login(ctx context.Context, email, password string) (*model.Person, string, error)
}

// AuthHandler は登録・ログインのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// signupRequest は新規登録リクエストのボディ。
type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup は新規ユーザーを登録する。
// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailureResponse(w, "リクエストボディの形式が正しくありません。")
		return
	}

	person, token, err := h.service.Signup(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessResponse(w, map[string]any{
		"message": "登録が完了しました。",
		"token":   token,
		"person":  toPersonResponse(person),
	})
}

// Login はメールアドレスとパスワードでログインする。
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailureResponse(w, "リクエストボディの形式が正しくありません。")
		return
	}

	person, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessResponse(w, map[string]any{
		"token":  token,
		"person": toPersonResponse(person),
	})
}
