// Package handler はHTTP APIのハンドラーとルーティングを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/taskman/internal/middleware"
	"github.com/hitoshi/taskman/internal/model"
)

// --- 共通レスポンス型 ---

// personResponse はユーザーのAPIレスポンス表現。
type personResponse struct {
	EntityID  string    `json:"entity_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Active    bool      `json:"active"`
	ChangedOn time.Time `json:"changed_on"`
}

// taskResponse はタスクのAPIレスポンス表現。
type taskResponse struct {
	EntityID  string    `json:"entity_id"`
	PersonID  string    `json:"person_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Active    bool      `json:"active"`
	ChangedOn time.Time `json:"changed_on"`
}

// toPersonResponse はドメインのPersonをAPIレスポンス表現に変換する。
func toPersonResponse(p *model.Person) personResponse {
	return personResponse{
		EntityID:  p.EntityID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Active:    p.Active,
		ChangedOn: p.ChangedOn,
	}
}

// toTaskResponse はドメインのTaskをAPIレスポンス表現に変換する。
func toTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		EntityID:  t.EntityID,
		PersonID:  t.PersonID,
		Title:     t.Title,
		Completed: t.Completed,
		Active:    t.Active,
		ChangedOn: t.ChangedOn,
	}
}

// --- エンベロープ書き込み ---

// writeSuccessResponse は成功エンベロープ（success=true + 任意のペイロード）を書き込む。
func writeSuccessResponse(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// writeFailureResponse は失敗エンベロープを書き込む。
// API互換性のため、ドメインエラー（バリデーション・未検出・権限）は
// HTTP 200のままsuccess=falseと人間可読のmessageで返す。
func writeFailureResponse(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

// handleServiceError はサービス層のエラーをレスポンスに変換する。
// 認証カテゴリのAPIErrorは401、それ以外のAPIErrorはHTTP 200の失敗エンベロープ、
// 予期しないエラーはログに記録して500を返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Category == model.CategoryAuth {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": apiErr.Message,
			})
			return
		}
		writeFailureResponse(w, apiErr.Message)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": "内部エラーが発生しました。",
	})
}

// personIDOrUnauthorized はコンテキストからユーザーIDを取り出す。
// 取得できない場合は401を書き込み、falseを返す。
func personIDOrUnauthorized(w http.ResponseWriter, r *http.Request) (string, bool) {
	personID, err := middleware.PersonIDFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorizedResponse(w)
		return "", false
	}
	return personID, true
}
