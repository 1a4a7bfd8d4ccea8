// Package model はドメインモデルを定義する。
package model

// Credential はメールアドレスとパスワードによるログイン情報を表す。
// PasswordHashにはbcryptハッシュのみを格納し、平文は保持しない。
type Credential struct {
	Entity
	PersonID     string
	Email        string
	PasswordHash string
}
