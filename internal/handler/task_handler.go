package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/taskman/internal/model"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
// 所有者チェックはサービス層が行うため、ハンドラーは操作者のユーザーIDを
// そのまま渡すだけでよい。
type TaskServiceInterface interface {
	// Create は指定ユーザーのタスクを新規作成する。
	Create(ctx context.Context, personID, title string) (*model.Task, error)
	// ListByOwner は指定ユーザーのアクティブなタスク一覧を更新が新しい順で返す。
	ListByOwner(ctx context.Context, personID string) ([]*model.Task, error)
	// Update はタスクを部分更新する。nilフィールドは変更しない。
	Update(ctx context.Context, taskID, actingPersonID string, title *string, completed *bool) (*model.Task, error)
	// SoftDelete はタスクを論理削除する。
	SoftDelete(ctx context.Context, taskID, actingPersonID string) error
}

// TaskHandler はタスク管理のHTTPハンドラー。
type TaskHandler struct {
	service TaskServiceInterface
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(service TaskServiceInterface) *TaskHandler {
	return &TaskHandler{service: service}
}

// createTaskRequest はタスク作成リクエストのボディ。
type createTaskRequest struct {
	Title string `json:"title"`
}

// updateTaskRequest はタスク更新リクエストのボディ。
// ポインタ型により「未指定」と「ゼロ値の明示指定」を区別する。
// completed=falseは有効な更新として扱われる。
type updateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// List は認証済みユーザーのタスク一覧を取得する。
// 該当なしの場合も成功レスポンスで空配列を返す。
// GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDOrUnauthorized(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.ListByOwner(r.Context(), personID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	list := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		list[i] = toTaskResponse(t)
	}

	writeSuccessResponse(w, map[string]any{
		"tasks": list,
	})
}

// Create は認証済みユーザーのタスクを新規作成する。
// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDOrUnauthorized(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailureResponse(w, "リクエストボディの形式が正しくありません。")
		return
	}

	task, err := h.service.Create(r.Context(), personID, req.Title)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessResponse(w, map[string]any{
		"message": "タスクを作成しました。",
		"task":    toTaskResponse(task),
	})
}

// Update はタスクを部分更新する。
// 対象タスクが操作者のものでない場合は権限エラーになる。
// PUT /tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDOrUnauthorized(w, r)
	if !ok {
		return
	}

	taskID := chi.URLParam(r, "id")

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailureResponse(w, "リクエストボディの形式が正しくありません。")
		return
	}

	task, err := h.service.Update(r.Context(), taskID, personID, req.Title, req.Completed)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessResponse(w, map[string]any{
		"message": "タスクを更新しました。",
		"task":    toTaskResponse(task),
	})
}

// Delete はタスクを論理削除する。
// DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDOrUnauthorized(w, r)
	if !ok {
		return
	}

	taskID := chi.URLParam(r, "id")

	if err := h.service.SoftDelete(r.Context(), taskID, personID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessResponse(w, map[string]any{
		"message": "タスクを削除しました。",
	})
}
