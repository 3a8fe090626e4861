package apperror

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Messages shown to users when the sales data store fails
const (
	MsgStorePermission = "You do not have permission to view sales data."
	MsgStoreNetwork    = "Unable to reach the data store. Check your connection and try again."
	MsgStoreSchema     = "Sales data is unavailable due to a data configuration problem."
	MsgStoreGeneric    = "Failed to generate sales report."
)

var (
	permissionHints = []string{"permission denied", "row-level security", "not authorized", "jwt"}
	networkHints    = []string{
		"connection refused", "timeout", "deadline exceeded", "no such host",
		"network", "eof", "connection reset", "failed to connect",
	}
	schemaHints = []string{"does not exist", "column", "relation", "undefined", "schema"}
)

// StoreErrorKind decides which kind of failure a data store error is.
// SQLSTATE codes win over message matching.
func StoreErrorKind(err error) Kind {
	if err == nil {
		return KindGeneric
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501":
			return KindPermission
		case pgErr.Code == "42P01", pgErr.Code == "42703", pgErr.Code == "3F000":
			return KindSchema
		case strings.HasPrefix(pgErr.Code, "08"):
			return KindNetwork
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, permissionHints):
		return KindPermission
	case containsAny(msg, networkHints):
		return KindNetwork
	case containsAny(msg, schemaHints):
		return KindSchema
	}
	return KindGeneric
}

// ClassifyStoreError turns a data store error into a user facing AppError.
// The original error stays reachable through errors.Unwrap.
func ClassifyStoreError(err error) *AppError {
	kind := StoreErrorKind(err)
	appErr := &AppError{Kind: kind, cause: err}
	switch kind {
	case KindPermission:
		appErr.Code = http.StatusForbidden
		appErr.Message = MsgStorePermission
	case KindNetwork:
		appErr.Code = http.StatusServiceUnavailable
		appErr.Message = MsgStoreNetwork
	case KindSchema:
		appErr.Code = http.StatusInternalServerError
		appErr.Message = MsgStoreSchema
	default:
		appErr.Code = http.StatusInternalServerError
		appErr.Message = MsgStoreGeneric
	}
	return appErr
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
