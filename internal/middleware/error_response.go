package middleware

import (
	"encoding/json"
	"net/http"
)

// failureResponseBody はミドルウェア層から返すエラーレスポンスの統一フォーマット。
// APIの互換性規約に合わせ、successフラグと人間可読のmessageを含む。
type failureResponseBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteUnauthorizedResponse は401 Unauthorizedレスポンスを書き込む。
// 認証失敗はドメインエラーと異なり、HTTP 200の失敗エンベロープではなく401を返す。
func WriteUnauthorizedResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(failureResponseBody{
		Success: false,
		Message: "認証が必要です。",
	})
}
