package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// WeeklySummaryInput is the input for get_weekly_summary.
type WeeklySummaryInput struct {
	StartDate string `json:"start_date" jsonschema:"First day of the week (YYYY-MM-DD)"`
}

func (h *Handler) GetWeeklySummaryTool() func(context.Context, *mcp.CallToolRequest, WeeklySummaryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WeeklySummaryInput) (*mcp.CallToolResult, any, error) {
		s, err := h.service.GetWeeklySummary(ctx, in.StartDate)
		if err != nil {
			return errorResult("Error building weekly summary: " + err.Error()), nil, nil
		}
		return jsonResult(s), nil, nil
	}
}

// MonthlySummaryInput is the input for get_monthly_summary.
type MonthlySummaryInput struct {
	Year  int `json:"year" jsonschema:"Calendar year, e.g. 2025"`
	Month int `json:"month" jsonschema:"Month number 1-12"`
}

func (h *Handler) GetMonthlySummaryTool() func(context.Context, *mcp.CallToolRequest, MonthlySummaryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MonthlySummaryInput) (*mcp.CallToolResult, any, error) {
		if in.Month < 1 || in.Month > 12 {
			return errorResult("Invalid month: use 1-12"), nil, nil
		}
		s, err := h.service.GetMonthlySummary(ctx, in.Year, in.Month)
		if err != nil {
			return errorResult("Error building monthly summary: " + err.Error()), nil, nil
		}
		return jsonResult(s), nil, nil
	}
}

// WorkoutsTimeRangeInput is the input for get_workouts_for_time_range.
type WorkoutsTimeRangeInput struct {
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), inclusive"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), inclusive"`
}

func (h *Handler) GetWorkoutsForTimeRangeTool() func(context.Context, *mcp.CallToolRequest, WorkoutsTimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutsTimeRangeInput) (*mcp.CallToolResult, any, error) {
		list, err := h.service.ListWorkouts(ctx, in.FromDate, in.ToDate)
		if err != nil {
			return errorResult("Error listing workouts: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// ExerciseProgressInput is the input for get_exercise_progress.
type ExerciseProgressInput struct {
	ExerciseName string `json:"exercise_name" jsonschema:"Weight exercise name, e.g. Bench Press (case-insensitive)"`
}

func (h *Handler) GetExerciseProgressTool() func(context.Context, *mcp.CallToolRequest, ExerciseProgressInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseProgressInput) (*mcp.CallToolResult, any, error) {
		name := strings.TrimSpace(in.ExerciseName)
		if name == "" {
			return errorResult("Missing exercise_name"), nil, nil
		}
		points, err := h.service.GetExerciseProgress(ctx, name)
		if err != nil {
			return errorResult("Error fetching exercise progress: " + err.Error()), nil, nil
		}
		return jsonResult(points), nil, nil
	}
}

func (h *Handler) GetDataStatsTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		stats, err := h.service.GetDataStats(ctx)
		if err != nil {
			return errorResult("Error fetching data stats: " + err.Error()), nil, nil
		}
		return jsonResult(stats), nil, nil
	}
}

func (h *Handler) GetLatestMeasurementTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		m, err := h.service.GetLatestMeasurement(ctx)
		if err != nil {
			return errorResult("Error fetching latest measurement: " + err.Error()), nil, nil
		}
		if m == nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: "No body measurements recorded yet."}},
			}, nil, nil
		}
		return jsonResult(m), nil, nil
	}
}
