// Package model はドメインモデルを定義する。
package model

import "time"

// Entity は全レコード共通のバージョン管理ベース。
// EntityIDは初回保存時に採番され、以後変更されない。
// Activeがfalseのレコードは論理削除済みとして扱い、通常の読み取りから除外する。
// ChangedOnは保存のたびにリポジトリ層が更新する（単調非減少）。
type Entity struct {
	EntityID  string
	Active    bool
	ChangedOn time.Time
}

// Touch は変更タイムスタンプを現在時刻に更新する。
// ChangedOnの単調性を保つため、現在時刻が既存値より過去の場合は更新しない。
func (e *Entity) Touch(now time.Time) {
	if now.After(e.ChangedOn) {
		e.ChangedOn = now
	}
}

// Deactivate はレコードを論理削除する。物理削除は行わない。
func (e *Entity) Deactivate() {
	e.Active = false
}
