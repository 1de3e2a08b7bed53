package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/PIEROLS15/TaskMasterBackend/internal/models"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both "user not found" and "password
	// mismatch" so that callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid access token")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskForbidden      = errors.New("task owned by another user")
)

// DB is the subset of *pgxpool.Pool the services query through.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type AuthService interface {
	// Register hashes the password with argon2id and creates the user.
	//
	// It returns ErrEmailTaken if a user with the
	// given email already exists.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login authenticates the user by email and password, mints a new
	// opaque bearer token, persists its digest keyed to the user and
	// returns the plaintext. The plaintext is never stored and never
	// returned again.
	//
	// It returns ErrInvalidCredentials on unknown email
	// and on password mismatch alike.
	Login(ctx context.Context, params LoginParams) (string, error)

	// Authenticate resolves a bearer token to its user or
	// returns ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*models.User, error)

	// Logout revokes every access token of the given user,
	// not just the one used for the current request.
	Logout(ctx context.Context, userID int64) error
}

type TaskService interface {
	// ListTasks returns all tasks owned by the user in store-default
	// order. An owner without tasks gets an empty slice, not an error.
	ListTasks(ctx context.Context, userID int64) ([]*models.Task, error)

	// CreateTask inserts a task owned by params.UserID. The owner is
	// always the authenticated caller; it cannot be set from a request
	// body.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTask fetches a task by id. It returns ErrTaskNotFound if no
	// such task exists and ErrTaskForbidden if it is owned by a
	// different user. Not-found wins over forbidden: the existence
	// check runs first.
	GetTask(ctx context.Context, taskID, userID int64) (*models.Task, error)

	// UpdateTask persists the given fields onto a task the caller
	// already fetched through GetTask. Only title, description,
	// due_date and status can change; nil fields keep their value.
	UpdateTask(ctx context.Context, task *models.Task, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask hard-deletes the task. No soft delete, no recovery.
	DeleteTask(ctx context.Context, taskID, userID int64) error
}

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginParams struct {
	Email    string
	Password string
}

type CreateTaskParams struct {
	UserID      int64
	Title       string
	Description *string
	DueDate     time.Time
	Status      string
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *string
}
