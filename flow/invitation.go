package flow

import "sync"

// InvitationState coordinates single-consumption invitation code handling
// across multiple entry points: each distinct code is handed out for
// processing exactly once until Reset.
type InvitationState struct {
	mu            sync.Mutex
	handling      bool
	processedCode string
}

func NewInvitationState() *InvitationState {
	return &InvitationState{}
}

// StartHandling claims an invitation code for processing. Returns false
// when the code was already claimed since the last Reset.
func (s *InvitationState) StartHandling(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processedCode == code {
		return false
	}
	s.processedCode = code
	s.handling = true
	return true
}

// CompleteHandling marks the in-flight invitation as done. The processed
// code stays claimed until Reset.
func (s *InvitationState) CompleteHandling() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handling = false
}

// Reset clears all invitation state, for logout or error recovery.
func (s *InvitationState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handling = false
	s.processedCode = ""
}

// IsHandling reports whether an invitation is currently being processed.
func (s *InvitationState) IsHandling() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handling
}

// ProcessedCode returns the most recently claimed code, or "".
func (s *InvitationState) ProcessedCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processedCode
}
