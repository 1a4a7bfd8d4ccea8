package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/taskman/internal/model"
)

// prepareForSave は保存前のEntityを整える。
// EntityIDが未採番の場合は新規IDを割り当ててactive=trueで開始し、
// changed_onを更新する。論理削除済み（active=false）の状態は維持する。
func prepareForSave(e *model.Entity, now time.Time) {
	if e.EntityID == "" {
		e.EntityID = uuid.NewString()
		e.Active = true
	}
	e.Touch(now)
}
