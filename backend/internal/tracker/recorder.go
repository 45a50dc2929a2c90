package tracker

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"action-graph/backend/internal/graph"
	apperrors "action-graph/backend/pkg/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// RecordActionRequest describes one tool invocation to record
type RecordActionRequest struct {
	UserID    string `json:"userId" validate:"required"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	UserTeam  string `json:"userTeam,omitempty"`

	MCPID   string `json:"mcpId" validate:"required"`
	MCPType string `json:"mcpType" validate:"required"`
	MCPName string `json:"mcpName" validate:"required"`

	ActionType string       `json:"actionType" validate:"required"`
	ActionName string       `json:"actionName" validate:"required"`
	Parameters graph.Params `json:"parameters"`
	Result     any          `json:"result"`
	Status     graph.Status `json:"status" validate:"required,oneof=success failure"`
}

// RecordResult is the outcome of RecordAction. A failed recording is
// informational; it never turns into an error for the caller.
type RecordResult struct {
	Success  bool   `json:"success"`
	ActionID string `json:"actionId,omitempty"`
	Message  string `json:"message"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// RecordAction persists req as a new Action linked to its User and MCP in one
// atomic write. Failures are logged and reported in the result.
func (t *Tracker) RecordAction(ctx context.Context, req RecordActionRequest) (res RecordResult) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("Recording panicked", zap.Any("panic", r))
			actionsRecorded.WithLabelValues(statusLabel(req.Status), "error").Inc()
			res = RecordResult{Success: false, Message: fmt.Sprintf("Failed to record action: %v", r)}
		}
	}()

	actionID, err := t.recordAction(ctx, req)
	if err != nil {
		t.logger.Error("Error recording action",
			zap.String("user_id", req.UserID),
			zap.String("mcp_id", req.MCPID),
			zap.String("action_type", req.ActionType),
			zap.Error(err),
		)
		actionsRecorded.WithLabelValues(statusLabel(req.Status), "error").Inc()
		return RecordResult{
			Success: false,
			Message: fmt.Sprintf("Failed to record action: %v", err),
		}
	}

	actionsRecorded.WithLabelValues(statusLabel(req.Status), "ok").Inc()
	return RecordResult{
		Success:  true,
		ActionID: actionID,
		Message:  "Action recorded successfully",
	}
}

// statusLabel keeps the metric's status label to a fixed set
func statusLabel(s graph.Status) string {
	if !s.Valid() {
		return "invalid"
	}
	return string(s)
}

func (t *Tracker) recordAction(ctx context.Context, req RecordActionRequest) (string, error) {
	if err := t.validateRequest(req); err != nil {
		return "", err
	}

	parametersJSON, err := graph.EncodeParams(req.Parameters)
	if err != nil {
		return "", apperrors.NewPayloadEncoding("parameters", err)
	}
	resultJSON, err := graph.EncodeResult(req.Result)
	if err != nil {
		return "", apperrors.NewPayloadEncoding("result", err)
	}

	rec := graph.ActionRecord{
		UserID:         req.UserID,
		UserName:       req.UserName,
		UserEmail:      req.UserEmail,
		UserTeam:       req.UserTeam,
		MCPID:          req.MCPID,
		MCPType:        req.MCPType,
		MCPName:        req.MCPName,
		ActionID:       t.newID(),
		ActionType:     req.ActionType,
		ActionName:     req.ActionName,
		ParametersJSON: parametersJSON,
		ParameterKeys:  req.Parameters.Keys(),
		ResultJSON:     resultJSON,
		Status:         req.Status,
		Timestamp:      t.now(),
	}

	if err := t.store.RecordAction(ctx, rec); err != nil {
		return "", err
	}
	return rec.ActionID, nil
}

func (t *Tracker) validateRequest(req RecordActionRequest) error {
	err := t.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "oneof" {
			return apperrors.NewInvalidInput(fe.Field(), "must be one of: "+fe.Param())
		}
		return apperrors.NewInvalidInput(fe.Field(), "is required")
	}
	return apperrors.NewInvalidInput("request", err.Error())
}
