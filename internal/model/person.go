// Package model はドメインモデルを定義する。
package model

// Person はサービス利用ユーザーを表す。
// 登録フローで作成され、プロフィール更新で変更される。
// FirstName・LastNameはそれぞれ任意だが、表示名としての役割を持つ。
type Person struct {
	Entity
	FirstName string
	LastName  string
}
