package eventbus

// Topics published by the server.
const (
	EventAuthLogin     = "auth:login"
	EventAuthLogout    = "auth:logout"
	EventPlanGenerated = "plan:generated"
	EventSystemError   = "system:error"
)

// AuthEventData describes a login or logout.
type AuthEventData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	IP     string `json:"ip,omitempty"`
}

// PlanEventData describes a completed plan generation.
type PlanEventData struct {
	UserID   string `json:"user_id"`
	Model    string `json:"model"`
	Fallback bool   `json:"fallback"`
	Cached   bool   `json:"cached"`
}

// SystemEventData carries non-fatal internal errors for the audit log.
type SystemEventData struct {
	Component string `json:"component"`
	Message   string `json:"message"`
}
