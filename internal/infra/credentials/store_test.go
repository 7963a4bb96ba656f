package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubExecutor struct {
	token string
	err   error
	exec  struct {
		query string
		args  []any
	}
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.exec.query = query
	s.exec.args = args
	return pgconn.CommandTag{}, s.err
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return stubRow{token: s.token, err: s.err}
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

type stubRow struct {
	token string
	err   error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) == 0 {
		return errors.New("no dest")
	}
	ptr, ok := dest[0].(*string)
	if !ok {
		return errors.New("invalid dest")
	}
	*ptr = r.token
	return nil
}

func TestAPIKeyTrimsStoredToken(t *testing.T) {
	store := NewStore(&stubExecutor{token: " abc123 "}, "")
	key, err := store.APIKey(context.Background())
	if err != nil {
		t.Fatalf("APIKey error: %v", err)
	}
	if key != "abc123" {
		t.Fatalf("expected abc123, got %q", key)
	}
}

func TestAPIKeyFallsBackToEnvironment(t *testing.T) {
	store := NewStore(&stubExecutor{err: pgx.ErrNoRows}, "env-key")
	key, err := store.APIKey(context.Background())
	if err != nil {
		t.Fatalf("APIKey error: %v", err)
	}
	if key != "env-key" {
		t.Fatalf("expected env-key, got %q", key)
	}
}

func TestAPIKeyAbsent(t *testing.T) {
	store := NewStore(&stubExecutor{err: pgx.ErrNoRows}, "")
	key, err := store.APIKey(context.Background())
	if err != nil {
		t.Fatalf("APIKey error: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key, got %q", key)
	}
}

func TestPresent(t *testing.T) {
	store := NewStore(&stubExecutor{token: "abc"}, "")
	present, err := store.Present(context.Background())
	if err != nil {
		t.Fatalf("Present error: %v", err)
	}
	if !present {
		t.Fatal("expected credential to be present")
	}

	store = NewStore(&stubExecutor{err: pgx.ErrNoRows}, "")
	present, err = store.Present(context.Background())
	if err != nil {
		t.Fatalf("Present error: %v", err)
	}
	if present {
		t.Fatal("expected credential to be absent")
	}
}

func TestSetAPIKey(t *testing.T) {
	exec := &stubExecutor{}
	store := NewStore(exec, "")
	if err := store.SetAPIKey(context.Background(), "secret"); err != nil {
		t.Fatalf("SetAPIKey error: %v", err)
	}
	if len(exec.exec.args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(exec.exec.args))
	}
	if v, ok := exec.exec.args[1].(string); !ok || v != "secret" {
		t.Fatalf("expected secret argument, got %T %v", exec.exec.args[1], exec.exec.args[1])
	}
}

func TestSetAPIKeyEmpty(t *testing.T) {
	store := NewStore(&stubExecutor{}, "")
	if err := store.SetAPIKey(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty key")
	}
}
