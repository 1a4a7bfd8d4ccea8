// Package model はドメインモデルを定義する。
package model

// Task はユーザー個人のタスクを表す。
// PersonIDは作成時に一度だけ設定され、以後再割り当てされない。
// タスクはPersonIDが一致するユーザーからのみ参照・変更できる。
type Task struct {
	Entity
	PersonID  string
	Title     string
	Completed bool
}
