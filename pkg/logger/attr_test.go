package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/authzkit/authzkit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))

	attr := logger.Errors(errors.New("first"), nil, errors.New("third"))
	assert.Equal(t, "errors", attr.Key)
	assert.Len(t, attr.Value.Group(), 2)
}

func TestGroup(t *testing.T) {
	t.Parallel()

	attr := logger.Group("grant",
		logger.Permission("billing:invoices:read"),
		logger.RoleCode("admin"),
	)
	assert.Equal(t, "grant", attr.Key)
	assert.Len(t, attr.Value.Group(), 2)
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
	assert.Equal(t, "user_id", logger.UserID("u1").Key)
	assert.Equal(t, "permission", logger.Permission("docs:read").Key)
	assert.Equal(t, "role_code", logger.RoleCode("viewer").Key)
	assert.Equal(t, slog.Attr{}, logger.Directive(nil))
	assert.Equal(t, "directive", logger.Directive("allow:docs:**").Key)
	assert.Equal(t, "component", logger.Component("resolver").Key)
	assert.Equal(t, "event", logger.Event("grant_revoked").Key)
	assert.Equal(t, "handler", logger.Handler("authorization").Key)
	assert.Equal(t, slog.Attr{}, logger.RequestID(nil))
	assert.Equal(t, "request_id", logger.RequestID("r1").Key)
}
