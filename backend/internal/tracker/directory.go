package tracker

import (
	"context"
	"time"

	"action-graph/backend/internal/graph"
	apperrors "action-graph/backend/pkg/errors"
	"go.uber.org/zap"
)

// Environments accepted by FindUserByEmail
const (
	EnvUAT  = "uat"
	EnvProd = "prod"
)

// FindUserByEmail looks up a user by exact email. env names the tracking
// environment the caller is asking about; all environments currently share
// one store. A missing user yields apperrors.ErrUserNotFound.
func (t *Tracker) FindUserByEmail(ctx context.Context, email, env string) (user *graph.User, err error) {
	start := time.Now()
	defer func() {
		if apperrors.IsUserNotFound(err) {
			observeQuery("find_user_by_email", start, nil)
			return
		}
		observeQuery("find_user_by_email", start, err)
	}()

	if email == "" {
		return nil, apperrors.NewInvalidInput("email", "is required")
	}
	if env != "" && env != EnvUAT && env != EnvProd {
		return nil, apperrors.NewInvalidInput("env", "must be one of: uat prod")
	}

	user, found, err := t.store.FindUserByEmail(ctx, email)
	if err != nil {
		t.logger.Error("Error finding user by email",
			zap.String("env", env),
			zap.Error(err),
		)
		return nil, err
	}
	if !found {
		t.logger.Debug("User not found", zap.String("env", env))
		return nil, apperrors.NewUserNotFound(email)
	}
	return user, nil
}
