package entity

import "time"

// Session is the per-user conversational state. Handlers are stateless and
// read or mutate only the session they are given.
type Session struct {
	ID        string
	Workflow  *WorkflowState
	Email     *PendingEmail
	FormData  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Workflow:  NewWorkflowState(),
		FormData:  make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset drops the wizard progress, any pending email and remembered field values.
func (s *Session) Reset() {
	s.Workflow.Reset()
	s.Email = nil
	s.FormData = make(map[string]string)
	s.UpdatedAt = time.Now()
}

func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}
