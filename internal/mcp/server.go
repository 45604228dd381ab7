package mcp

import (
	"context"
	"log/slog"

	"github.com/claude/liftcoach/internal/client"
	"github.com/claude/liftcoach/internal/coach"
	"github.com/claude/liftcoach/internal/models"
	"github.com/claude/liftcoach/internal/suggest"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Backend is the session the MCP tools operate on. *coach.Service (in
// process) and *client.Client (remote via REST) both satisfy it.
type Backend interface {
	View(ctx context.Context) (*coach.View, error)
	Plans(ctx context.Context) ([]models.TrainingPlan, error)
	AddPlan(ctx context.Context) (*coach.View, error)
	RenamePlan(ctx context.Context, planID, name string) (*coach.View, error)
	DeletePlan(ctx context.Context, planID string) (*coach.View, error)
	SelectPlan(ctx context.Context, planID string) (*coach.View, error)
	AddExercise(ctx context.Context, planID, name string) (*coach.View, error)
	UpdateExercise(ctx context.Context, planID string, e models.Exercise) (*coach.View, error)
	DeleteExercise(ctx context.Context, planID, exerciseID string) (*coach.View, error)
	RequestSuggestions(ctx context.Context, wait bool) (*suggest.RequestState, error)
	Suggestions(ctx context.Context) (*suggest.RequestState, error)
}

// Compile-time checks: both backends satisfy Backend.
var (
	_ Backend = (*coach.Service)(nil)
	_ Backend = (*client.Client)(nil)
)

// New creates an MCP server with all tools and resources registered.
func New(backend Backend, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftCoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftCoach training plan session. Manage workout plans and their exercises (sets, reps, weight in kg) and ask an AI trainer for feedback on the selected plan. Every mutating tool returns the updated view."),
	)

	h := &handlers{backend: backend, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetView, Handler: h.getView},
		server.ServerTool{Tool: toolListPlans, Handler: h.listPlans},
		server.ServerTool{Tool: toolAddPlan, Handler: h.addPlan},
		server.ServerTool{Tool: toolRenamePlan, Handler: h.renamePlan},
		server.ServerTool{Tool: toolDeletePlan, Handler: h.deletePlan},
		server.ServerTool{Tool: toolSelectPlan, Handler: h.selectPlan},
		server.ServerTool{Tool: toolAddExercise, Handler: h.addExercise},
		server.ServerTool{Tool: toolUpdateExercise, Handler: h.updateExercise},
		server.ServerTool{Tool: toolDeleteExercise, Handler: h.deleteExercise},
		server.ServerTool{Tool: toolRequestSuggestions, Handler: h.requestSuggestions},
		server.ServerTool{Tool: toolGetSuggestions, Handler: h.getSuggestions},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resSelectedPlan, Handler: h.selectedPlan},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	backend Backend
	log     *slog.Logger
}

// --- Resource definitions ---

var resSelectedPlan = mcp.NewResource(
	"liftcoach://selected_plan",
	"Selected Plan",
	mcp.WithResourceDescription("The currently selected training plan with its exercises, or null when no plan is selected"),
	mcp.WithMIMEType("application/json"),
)
