package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	for _, env := range []string{"production", "development", "test", ""} {
		t.Run("env="+env, func(t *testing.T) {
			Init(env)
			assert.NotNil(t, log)
		})
	}
}

func TestL_LazyInit(t *testing.T) {
	originalLog := log
	defer func() { log = originalLog }()

	log = nil
	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
	assert.NotNil(t, log)
}

func TestReplace(t *testing.T) {
	originalLog := L()
	core, observed := observer.New(zapcore.InfoLevel)

	restore := Replace(zap.New(core))
	L().Info("through replacement")
	restore()

	assert.Equal(t, 1, observed.Len())
	assert.Same(t, originalLog, L())
}

func TestRequestIDFrom(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")

	assert.Equal(t, "req-42", RequestIDFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	defer Replace(zap.New(core))()

	t.Run("with request and user ids", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc-123")
		ctx = WithUserID(ctx, 7)

		FromCtx(ctx).Info("tagged")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.Equal(t, uint64(7), fields["user_id"])
	})

	t.Run("bare context", func(t *testing.T) {
		FromCtx(context.Background()).Info("untagged")

		logs := observed.TakeAll()
		assert.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, Sync)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	t.Run("generates id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("preserves incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
		req.Header.Set(RequestIDHeader, "upstream-id")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "upstream-id", seen)
		assert.Equal(t, "upstream-id", w.Header().Get(RequestIDHeader))
	})

	t.Run("replaces unusable incoming id", func(t *testing.T) {
		for _, bad := range []string{"has space", strings.Repeat("a", maxRequestIDLen+1), "line\nbreak"} {
			req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
			req.Header.Set(RequestIDHeader, bad)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.NotEqual(t, bad, seen)
			assert.Len(t, seen, 36)
		}
	})
}
