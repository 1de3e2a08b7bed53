package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/rs/zerolog"

	"github.com/PIEROLS15/TaskMasterBackend/internal/models"
)

func newTaskServiceForTest(t *testing.T) (TaskService, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return NewTaskService(zerolog.Nop(), mock), mock
}

func taskRowColumns() []string {
	return []string{"user_id", "title", "description", "due_date", "status", "created_at", "updated_at"}
}

func TestTaskService_CreateTask_DefaultsStatusToPending(t *testing.T) {
	svc, mock := newTaskServiceForTest(t)

	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs(int64(1), "Buy milk", pgxmock.AnyArg(), pgxmock.AnyArg(),
			models.StatusPending, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))

	task, err := svc.CreateTask(context.Background(), CreateTaskParams{
		UserID:  1,
		Title:   "Buy milk",
		DueDate: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 5 {
		t.Fatalf("task.ID = %d, want 5", task.ID)
	}
	if task.Status != models.StatusPending {
		t.Fatalf("task.Status = %q, want %q", task.Status, models.StatusPending)
	}
	if task.UserID != 1 {
		t.Fatalf("task.UserID = %d, want 1", task.UserID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	svc, mock := newTaskServiceForTest(t)

	mock.ExpectQuery(`FROM tasks`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetTask(context.Background(), 99, 1)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskService_GetTask_ForeignOwnerForbidden(t *testing.T) {
	svc, mock := newTaskServiceForTest(t)

	now := time.Now()
	mock.ExpectQuery(`FROM tasks`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(taskRowColumns()).
			AddRow(int64(2), "Buy milk", (*string)(nil), now, models.StatusPending, now, now))

	_, err := svc.GetTask(context.Background(), 5, 1)
	if !errors.Is(err, ErrTaskForbidden) {
		t.Fatalf("error = %v, want ErrTaskForbidden", err)
	}
}

func TestTaskService_GetTask_Owned(t *testing.T) {
	svc, mock := newTaskServiceForTest(t)

	now := time.Now()
	mock.ExpectQuery(`FROM tasks`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(taskRowColumns()).
			AddRow(int64(1), "Buy milk", (*string)(nil), now, models.StatusPending, now, now))

	task, err := svc.GetTask(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 5 || task.UserID != 1 || task.Title != "Buy milk" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestTaskService_UpdateTask_KeepsAbsentFields(t *testing.T) {
	svc, mock := newTaskServiceForTest(t)

	due := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	task := &models.Task{
		ID:      5,
		UserID:  1,
		Title:   "Buy milk",
		DueDate: due,
		Status:  models.StatusPending,
	}

	status := models.StatusCompleted
	mock.ExpectExec(`UPDATE tasks`).
		WithArgs("Buy milk", pgxmock.AnyArg(), due, status,
			pgxmock.AnyArg(), int64(5), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	updated, err := svc.UpdateTask(context.Background(), task, UpdateTaskParams{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Fatalf("updated.Status = %q, want %q", updated.Status, models.StatusCompleted)
	}
	if updated.Title != "Buy milk" {
		t.Fatalf("updated.Title = %q, want it untouched", updated.Title)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	svc, mock := newTaskServiceForTest(t)

	mock.ExpectExec(`DELETE FROM tasks`).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := svc.DeleteTask(context.Background(), 5, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec(`DELETE FROM tasks`).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.DeleteTask(context.Background(), 5, 1)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskService_ListTasks_EmptySlice(t *testing.T) {
	svc, mock := newTaskServiceForTest(t)

	mock.ExpectQuery(`FROM tasks`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "description", "due_date", "status", "created_at", "updated_at"}))

	tasks, err := svc.ListTasks(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks == nil {
		t.Fatalf("expected an empty slice, got nil")
	}
	if len(tasks) != 0 {
		t.Fatalf("len(tasks) = %d, want 0", len(tasks))
	}
}
