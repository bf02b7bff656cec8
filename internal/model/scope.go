package model

// Scope carries the authenticated user context through a request.
// It is populated by the identity middleware from the session layer.
type Scope struct {
	UserID string
	Email  string
}

// Environment represents the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
