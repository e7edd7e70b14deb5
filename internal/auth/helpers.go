package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnauthenticated marks requests with no verified user attached.
var ErrUnauthenticated = errors.New("user not authenticated")

// ErrPermissionDenied marks requests touching another user's resources.
var ErrPermissionDenied = errors.New("cannot access another user's resources")

// RequireAuth extracts user claims from context or returns ErrUnauthenticated
func RequireAuth(ctx context.Context) (*UserClaims, error) {
	claims, ok := GetUserClaims(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// RequireUserAccess verifies the authenticated user matches the requested user ID
func RequireUserAccess(ctx context.Context, requestedUserID string) (*UserClaims, error) {
	claims, err := RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if requestedUserID != "" && requestedUserID != claims.UID {
		return nil, ErrPermissionDenied
	}

	return claims, nil
}

// WrapStoreError wraps store errors with operation context
func WrapStoreError(operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}
