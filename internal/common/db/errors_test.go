package db

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
)

var errNotFound = errors.New("not found")

func TestHandleQueryError_NoRows(t *testing.T) {
	err := HandleQueryError(pgx.ErrNoRows, errNotFound, "get visit counter", "visit_counters", time.Now())
	if !errors.Is(err, errNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestHandleQueryError_Nil(t *testing.T) {
	if err := HandleQueryError(nil, errNotFound, "list users", "users", time.Now()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestHandleExecError_PgError(t *testing.T) {
	cause := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}

	err := HandleExecError(cause, "create user", "users", time.Now())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
	if !strings.Contains(err.Error(), "sqlstate 42P01") {
		t.Errorf("expected sqlstate in message, got %q", err.Error())
	}
}

func TestHandleExecError_PlainError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	err := HandleExecError(cause, "increment visit counter", "visit_counters", time.Now())
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "failed to increment visit counter") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
