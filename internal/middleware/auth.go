// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// bearerPrefix はAuthorizationヘッダーのスキーム接頭辞。
const bearerPrefix = "Bearer "

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// personIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var personIDContextKey = contextKey("person_id")

// TokenVerifier はアクセストークンの検証に必要なインターフェース。
// auth.Serviceの部分集合として定義する。
type TokenVerifier interface {
	VerifyToken(tokenString string) (string, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証する
// ミドルウェアを返す。
// 認証済みユーザーIDをリクエストコンテキストに注入する。
// 未認証リクエストには401 Unauthorizedを返す。
func NewAuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. AuthorizationヘッダーからBearerトークンを取得
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, bearerPrefix) {
				WriteUnauthorizedResponse(w)
				return
			}
			tokenString := strings.TrimSpace(header[len(bearerPrefix):])
			if tokenString == "" {
				WriteUnauthorizedResponse(w)
				return
			}

			// 2. トークンの検証
			personID, err := verifier.VerifyToken(tokenString)
			if err != nil {
				WriteUnauthorizedResponse(w)
				return
			}

			// 3. 認証済みユーザーIDをコンテキストに注入
			ctx := context.WithValue(r.Context(), personIDContextKey, personID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PersonIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func PersonIDFromContext(ctx context.Context) (string, error) {
	personID, ok := ctx.Value(personIDContextKey).(string)
	if !ok || personID == "" {
		return "", fmt.Errorf("person ID not found in context")
	}
	return personID, nil
}

// ContextWithPersonID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithPersonID(ctx context.Context, personID string) context.Context {
	return context.WithValue(ctx, personIDContextKey, personID)
}
