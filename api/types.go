package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler      healthHandler
	authHandler        authHandler
	projectHandler     projectHandler
	applicationHandler applicationHandler
	accountHandler     accountHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Project does not exist"`
	Field   string `json:"field,omitempty" example:"name"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// SuccessResponse acknowledges a mutation
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// TokenResponse carries an access token after register or login
type TokenResponse struct {
	Token string `json:"token"`
}

// HealthResponse reports process uptime and database reachability
type HealthResponse struct {
	Uptime    float64 `json:"uptime"`
	Message   string  `json:"message"`
	Timestamp int64   `json:"timestamp"`
	Database  string  `json:"database"`
}
