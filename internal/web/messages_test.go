package web

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/wareroom/stockview/internal/gateway"
	"github.com/wareroom/stockview/internal/session"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: "",
		},
		{
			name:     "unauthenticated sentinel",
			err:      fmt.Errorf("resolve session: %w", session.ErrUnauthenticated),
			wantCode: "AUTH001",
		},
		{
			name:     "backend status error",
			err:      fmt.Errorf("backend imports: %w", &gateway.StatusError{Resource: "imports", Code: 500}),
			wantCode: "BE002",
		},
		{
			name:     "connection refused",
			err:      errors.New("Get \"http://backend/api\": dial tcp: connection refused"),
			wantCode: "BE001",
		},
		{
			name:     "decode failure",
			err:      errors.New("backend items: decode response: unexpected EOF"),
			wantCode: "BE003",
		},
		{
			name:     "timeout",
			err:      errors.New("context deadline exceeded (Client.Timeout exceeded)"),
			wantCode: "BE004",
		},
		{
			name:     "export failure",
			err:      errors.New("export table: table has no rows"),
			wantCode: "EXP001",
		},
		{
			name:     "session provider outage",
			err:      errors.New("session lookup: unexpected status 503"),
			wantCode: "AUTH002",
		},
		{
			name:     "unknown error",
			err:      errors.New("something novel"),
			wantCode: "GEN001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if tt.err != nil && got.Message == "" {
				t.Error("mapped message is empty")
			}
		})
	}
}

func TestMapErrorPatternsAreCaseInsensitive(t *testing.T) {
	got := MapError(errors.New("DIAL TCP: CONNECTION REFUSED"))
	if got.Code != "BE001" {
		t.Errorf("Code = %q, want BE001", got.Code)
	}
}

func TestFormatUserError(t *testing.T) {
	s := FormatUserError(errors.New("connection refused"))
	if !strings.Contains(s, "BE001") {
		t.Errorf("formatted error missing code: %q", s)
	}
	if !strings.Contains(s, "unreachable") {
		t.Errorf("formatted error missing message: %q", s)
	}

	if s := FormatUserError(nil); s != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", s)
	}
}
