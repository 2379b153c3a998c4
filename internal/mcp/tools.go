package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetTrainingStatus = mcp.NewTool("get_training_status",
	mcp.WithDescription("Get the user's current training state. Exactly one of: no_plan, session_in_progress, trained_today, recovery_day, week_complete, ready_to_train. Includes the next plan day with exercises when ready to train."),
)

var toolGetConsistency = mcp.NewTool("get_consistency",
	mcp.WithDescription("Get adherence percentages: per-session set completion (last 10 sessions), weekly session rate, and monthly session rate. Rates are capped at 100."),
)

var toolGetMuscleLevels = mcp.NewTool("get_muscle_levels",
	mcp.WithDescription("Get per-muscle-group XP totals and levels, including XP into the current level and XP required for the next."),
)

var toolGetCharacterLevel = mcp.NewTool("get_character_level",
	mcp.WithDescription("Get the overall character level: the rounded average of all muscle group levels."),
)

var toolGetProgressHistory = mcp.NewTool("get_progress_history",
	mcp.WithDescription("Get per-session training volume and XP gained, in chronological order, for charting progress over time."),
	mcp.WithNumber("limit", mcp.Description("How many recent sessions to include. Defaults to 30.")),
)

var toolGetRecentSessions = mcp.NewTool("get_recent_sessions",
	mcp.WithDescription("List the user's most recent completed training sessions, newest first."),
	mcp.WithNumber("limit", mcp.Description("How many sessions to return. Defaults to 10.")),
)

// --- Tool handlers ---

func (h *handlers) getTrainingStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	status, err := h.ds.Status(ctx, uid, time.Now())
	if err != nil {
		h.log.Error("mcp get_training_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(status)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getConsistency(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	metrics, err := h.ds.Consistency(ctx, uid, time.Now())
	if err != nil {
		h.log.Error("mcp get_consistency", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(metrics)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMuscleLevels(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	progress, err := h.ds.MuscleProgress(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_muscle_levels", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(progress)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCharacterLevel(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	level, err := h.ds.CharacterLevel(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_character_level", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]int{"level": level})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgressHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	limit := req.GetInt("limit", 30)
	if limit <= 0 || limit > 100 {
		limit = 30
	}

	history, err := h.ds.ProgressHistory(ctx, uid, limit)
	if err != nil {
		h.log.Error("mcp get_progress_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(history)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	limit := req.GetInt("limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	sessions, err := h.ds.RecentSessions(ctx, uid, limit)
	if err != nil {
		h.log.Error("mcp get_recent_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// jsonResource marshals v as the JSON contents of a resource read.
func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
