// Package security はアプリケーションのセキュリティ機能を提供する。
//
// InputSanitizerService はユーザー入力のテキスト（タスクのタイトルや氏名）から
// HTMLタグを除去し、蓄積型XSSからAPI利用側を保護する。
// bluemondayのStrictPolicy（全タグ除去）を使用するため、
// 保存される値は常にプレーンテキストになる。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// InputSanitizerService はユーザー入力テキストのサニタイズ機能のインターフェースを定義する。
// サービス層が保存前の値に適用する。
type InputSanitizerService interface {
	// SanitizeText は入力テキストからHTMLタグを除去し、
	// エンティティをデコードした上で前後の空白をトリムして返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	SanitizeText(raw string) string
}

// inputSanitizer はInputSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type inputSanitizer struct {
	policy *bluemonday.Policy
}

// NewInputSanitizer はInputSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyは全てのタグ・属性を除去し、テキストのみを残す。
func NewInputSanitizer() *inputSanitizer {
	return &inputSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText は入力テキストからHTMLタグを除去して返す。
// bluemondayはテキストをHTMLエスケープして返すため、
// プレーンテキストとして保存できるようにエンティティをデコードする。
func (s *inputSanitizer) SanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// compile-time interface check
var _ InputSanitizerService = (*inputSanitizer)(nil)
