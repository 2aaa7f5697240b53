package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	APIPrefix = "/api/v1"

	// Auth Routes
	RouteAuthRegister = APIPrefix + "/auth/register"
	RouteAuthToken    = APIPrefix + "/auth/token"

	// Analysis Routes
	RouteAnalyze = APIPrefix + "/analyze/{sector}"

	// Observability Routes
	RouteHealth = APIPrefix + "/health"
)
