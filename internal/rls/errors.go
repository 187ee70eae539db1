package rls

import "fmt"

// ConfigError indicates a route wiring bug: the request reached the engine
// without resource metadata. It maps to an internal error, not a denial.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rls configuration error: %s", e.Detail)
}

// AuthzError indicates the authenticated caller cannot be authorized: no
// assigned role, or a required identifier is absent. Maps to 403.
type AuthzError struct {
	Resource string
	Detail   string
}

func (e *AuthzError) Error() string {
	return fmt.Sprintf("authorization failed for %s: %s", e.Resource, e.Detail)
}

// EnforcementViolation indicates a handler fetched data without honoring an
// RLS context that required filtering. It signals a code-path bug and is
// fatal for the request.
type EnforcementViolation struct {
	Resource string
	Role     string
	Config   string
}

func (e *EnforcementViolation) Error() string {
	return fmt.Sprintf("rls enforcement violation: resource=%s role=%s config=%s",
		e.Resource, e.Role, e.Config)
}
