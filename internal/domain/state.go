package domain

// WorkflowState enumerates the stages of a studio session. Exactly one holds
// at any time; there is no terminal state.
type WorkflowState string

const (
	StateSetup           WorkflowState = "setup"
	StateGeneratingImage WorkflowState = "generating_image"
	StateGeneratingVideo WorkflowState = "generating_video"
	StateResult          WorkflowState = "result"
)

// Busy reports whether a generation call is in flight for this state. New
// triggers must be rejected while busy.
func (s WorkflowState) Busy() bool {
	return s == StateGeneratingImage || s == StateGeneratingVideo
}
