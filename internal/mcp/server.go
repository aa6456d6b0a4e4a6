package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chihironakai0517/workout-tracker/internal/datasync"
	"github.com/chihironakai0517/workout-tracker/internal/health"
	"github.com/chihironakai0517/workout-tracker/internal/summary"
	"github.com/chihironakai0517/workout-tracker/internal/workouts"
)

// Sources are the tracker services the MCP tools read from.
type Sources struct {
	Workouts     *workouts.Repo
	Measurements *health.MeasurementsRepo
	Summaries    *summary.Service
	Sync         *datasync.Service
}

// NewServer builds an MCP server with tracker tools: weekly and monthly summaries,
// workouts for a date range, exercise progress, data stats and the latest body measurement.
// Used by the backend when mounting MCP at /mcp and by cmd/tracker_mcp over stdio.
func NewServer(src Sources) *mcp.Server {
	analyzer := workouts.NewAnalyzer(src.Workouts)
	svc := NewContextService(src.Summaries, src.Workouts, analyzer, src.Sync, src.Measurements)
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "workout-tracker-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_weekly_summary",
		Description: "Returns averages (weight, body fat, calories, macros, water), total workouts and goal deltas for the 7 days starting at start_date (YYYY-MM-DD). Use when asked how a given week went.",
	}, h.GetWeeklySummaryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_monthly_summary",
		Description: "Returns the monthly averages, total workouts, per-week breakdown and goal deltas. Args: year, month (1-12). Use for month-over-month progress questions.",
	}, h.GetMonthlySummaryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workouts_for_time_range",
		Description: "Returns logged workouts (muscle groups, exercises, calories) dated within from_date and to_date (YYYY-MM-DD, both optional and inclusive), oldest first.",
	}, h.GetWorkoutsForTimeRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_progress",
		Description: "Returns the heaviest weight per workout day for a weight exercise. Arg: exercise_name (e.g. Bench Press). Use when asked about strength progression.",
	}, h.GetExerciseProgressTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_data_stats",
		Description: "Returns totals over the stored workout history: workouts, exercises, calories, covered date range and serialized data size.",
	}, h.GetDataStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_latest_body_measurement",
		Description: "Returns the most recent body measurement (weight, body fat, BMR and profile fields), if any.",
	}, h.GetLatestMeasurementTool())

	return s
}
