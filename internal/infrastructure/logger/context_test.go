package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newBufferLogger() (*zap.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	return zap.New(core), &buf
}

func TestWithContext_FromContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)
	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestWithRequestID(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestWithUserID(t *testing.T) {
	ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-456")
	assert.Equal(t, "user-456", GetUserID(ctx))
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestContextLogger_InjectsContextFields(t *testing.T) {
	logger, buf := newBufferLogger()

	ctx, _ := WithRequestID(context.Background(), logger, "req-abc")
	ctx, _ = WithUserID(ctx, FromContext(ctx), "user-def")

	L(ctx).Info("stock adjusted")

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-abc"`)
	assert.Contains(t, output, `"user_id":"user-def"`)
	assert.Contains(t, output, "stock adjusted")
}

func TestContextLogger_NoFields(t *testing.T) {
	logger, buf := newBufferLogger()

	WithLogger(context.Background(), logger).Info("plain message")

	output := buf.String()
	assert.Contains(t, output, "plain message")
	assert.NotContains(t, output, "request_id")
}

func TestContextLogger_With(t *testing.T) {
	logger, buf := newBufferLogger()

	WithLogger(context.Background(), logger).
		With(zap.String("warehouse", "WH-A")).
		Info("transfer complete")

	assert.Contains(t, buf.String(), `"warehouse":"WH-A"`)
}
