package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/waitlist-site/backend/internal/admin/service"
	"github.com/waitlist-site/backend/internal/common/crypto"
	commonerrors "github.com/waitlist-site/backend/internal/common/errors"
	"github.com/waitlist-site/backend/internal/common/logger"
)

func newGate(t *testing.T, secret string) *service.Gate {
	t.Helper()
	log, _ := logger.New("", "test", "info")
	return service.NewGate(crypto.NewPlainSecret(secret), log)
}

func TestGate_Check(t *testing.T) {
	gate := newGate(t, "s3cret")

	tests := []struct {
		name    string
		secret  string
		wantErr bool
	}{
		{name: "match", secret: "s3cret"},
		{name: "wrong", secret: "nope", wantErr: true},
		{name: "empty", secret: "", wantErr: true},
		{name: "prefix", secret: "s3cre", wantErr: true},
		{name: "case", secret: "S3CRET", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Check(context.Background(), "login", tt.secret)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, commonerrors.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestGate_Check_Stateless(t *testing.T) {
	gate := newGate(t, "s3cret")
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_ = gate.Check(ctx, "login", "wrong")
	}
	if err := gate.Check(ctx, "login", "s3cret"); err != nil {
		t.Errorf("expected repeated failures not to lock out, got %v", err)
	}
	if err := gate.Check(ctx, "login", "s3cret"); err != nil {
		t.Errorf("expected second success, got %v", err)
	}
}

func TestGate_Check_Bcrypt(t *testing.T) {
	hash, err := crypto.HashSecret("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	log, _ := logger.New("", "test", "info")
	gate := service.NewGate(crypto.NewBcryptSecret(hash), log)

	if err := gate.Check(context.Background(), "login", "s3cret"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := gate.Check(context.Background(), "login", hash); !errors.Is(err, commonerrors.ErrUnauthorized) {
		t.Errorf("expected the hash itself to be rejected, got %v", err)
	}
}
