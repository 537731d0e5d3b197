// Reelscout - Movie Discovery and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscout

package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateRequestID(t *testing.T) {
	t.Parallel()

	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b {
		t.Errorf("GenerateRequestID() returned duplicate %q", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateRequestID() = %q, not a UUID: %v", a, err)
	}
}

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q, want empty", got)
	}

	ctx = ContextWithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext() = %q, want req-123", got)
	}

	// The key is unexported, so a plain string key cannot collide with it.
	//nolint:staticcheck // deliberate string key
	ctx = context.WithValue(context.Background(), "request_id", "spoofed")
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(string key) = %q, want empty", got)
	}
}

func TestCtxAddsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))
	ctx = ContextWithRequestID(ctx, "req-abc")

	Ctx(ctx).Info().Msg("handled")
	CtxErr(ctx, errors.New("upstream down")).Msg("failed")

	output := buf.String()
	if strings.Count(output, `"request_id":"req-abc"`) != 2 {
		t.Errorf("expected request_id on both lines, got: %s", output)
	}
	if !strings.Contains(output, `"error":"upstream down"`) {
		t.Errorf("expected error field, got: %s", output)
	}
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	t.Parallel()

	logger := Ctx(context.Background())
	if logger.GetLevel() != Logger().GetLevel() {
		t.Errorf("Ctx() level = %v, want global %v", logger.GetLevel(), Logger().GetLevel())
	}
}
