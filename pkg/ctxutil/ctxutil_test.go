package ctxutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromCtx(ctx))
}

func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, RequestIDFromCtx(context.Background()))
}
