package entity

type Step string

const (
	StepInitial           Step = "initial"
	StepPersonalInfo      Step = "personal_info"
	StepSelectProgram     Step = "select_program"
	StepUploadDocuments   Step = "upload_documents"
	StepSubmitApplication Step = "submit_application"
)

var stepOrder = map[Step]int{
	StepInitial:           0,
	StepPersonalInfo:      1,
	StepSelectProgram:     2,
	StepUploadDocuments:   3,
	StepSubmitApplication: 4,
}

// Index is the position of s in the wizard sequence, or -1 for an unknown step.
func (s Step) Index() int {
	if i, ok := stepOrder[s]; ok {
		return i
	}
	return -1
}

func (s Step) Valid() bool {
	return s.Index() >= 0
}

// Form data keys captured by the wizard.
const (
	FormName          = "name"
	FormProgram       = "program"
	FormDocuments     = "documents"
	FormSubmitted     = "submitted"
	FormApplicationID = "application_id"
)

type WorkflowState struct {
	CurrentIntent Intent
	CurrentStep   Step
	FormData      map[string]any
}

func NewWorkflowState() *WorkflowState {
	w := &WorkflowState{}
	w.Reset()
	return w
}

func (w *WorkflowState) Reset() {
	w.CurrentIntent = ""
	w.CurrentStep = StepInitial
	w.FormData = make(map[string]any)
}

func (w *WorkflowState) Active() bool {
	return w.CurrentStep != StepInitial
}

// Advance moves to step when it lies ahead of the current one.
// It reports whether the state changed.
func (w *WorkflowState) Advance(intent Intent, step Step) bool {
	if !step.Valid() || step.Index() <= w.CurrentStep.Index() {
		return false
	}
	w.CurrentIntent = intent
	w.CurrentStep = step
	return true
}

func (w *WorkflowState) Submitted() bool {
	v, _ := w.FormData[FormSubmitted].(bool)
	return v
}

func (w *WorkflowState) Text(key string) string {
	s, _ := w.FormData[key].(string)
	return s
}

func (w *WorkflowState) Documents() []string {
	docs, _ := w.FormData[FormDocuments].([]string)
	return docs
}

func (w *WorkflowState) AddDocument(doc string) int {
	docs := append(w.Documents(), doc)
	w.FormData[FormDocuments] = docs
	return len(docs)
}
