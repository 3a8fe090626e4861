package apperror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestStoreErrorKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"insufficient privilege code", &pgconn.PgError{Code: "42501", Message: "nope"}, KindPermission},
		{"undefined table code", &pgconn.PgError{Code: "42P01", Message: "boom"}, KindSchema},
		{"undefined column code", fmt.Errorf("list licenses: %w", &pgconn.PgError{Code: "42703"}), KindSchema},
		{"connection exception class", &pgconn.PgError{Code: "08006"}, KindNetwork},
		{"rls message", errors.New("new row violates row-level security policy"), KindPermission},
		{"jwt message", errors.New("JWT expired"), KindPermission},
		{"refused", errors.New("dial tcp 10.0.0.1:5432: connect: connection refused"), KindNetwork},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), KindNetwork},
		{"eof", io.ErrUnexpectedEOF, KindNetwork},
		{"missing relation", errors.New(`relation "sync_proposals" does not exist`), KindSchema},
		{"other", errors.New("something odd"), KindGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StoreErrorKind(tc.err))
		})
	}
}

func TestClassifyStoreError(t *testing.T) {
	cause := errors.New("permission denied for table track_licenses")
	appErr := ClassifyStoreError(cause)

	assert.Equal(t, http.StatusForbidden, appErr.Code)
	assert.Equal(t, MsgStorePermission, appErr.Message)
	assert.Equal(t, KindPermission, appErr.Kind)
	assert.ErrorIs(t, appErr, cause)

	generic := ClassifyStoreError(errors.New("unexpected"))
	assert.Equal(t, http.StatusInternalServerError, generic.Code)
	assert.Equal(t, MsgStoreGeneric, generic.Message)

	network := ClassifyStoreError(errors.New("i/o timeout"))
	assert.Equal(t, http.StatusServiceUnavailable, network.Code)
	assert.Equal(t, MsgStoreNetwork, network.Message)
}

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", ErrTooManyRequest)
	assert.Same(t, ErrTooManyRequest, GetAppError(wrapped))

	plain := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, KindGeneric, plain.Kind)
}
