package entity

import "strings"

type TaskStatus string

const (
	StatusOpened           TaskStatus = "opened"
	StatusPortalOpened     TaskStatus = "portal_opened"
	StatusFormFilled       TaskStatus = "form_filled"
	StatusManual           TaskStatus = "manual"
	StatusSubmissionReady  TaskStatus = "submission_ready"
	StatusLoginRequired    TaskStatus = "login_required"
	StatusAwaitingLogin    TaskStatus = "awaiting_login"
	StatusMissingRecipient TaskStatus = "missing_recipient"
	StatusMissingBody      TaskStatus = "missing_body"
	StatusNeedsReview      TaskStatus = "needs_review"
	StatusManualRequired   TaskStatus = "manual_required"
	StatusConfirmRequired  TaskStatus = "confirm_required"
	StatusSent             TaskStatus = "sent"
	StatusSubmitted        TaskStatus = "submitted"
	StatusCancelled        TaskStatus = "cancelled"
	StatusWorkflow         TaskStatus = "workflow"
	StatusReady            TaskStatus = "ready"
	StatusReset            TaskStatus = "reset"
)

// Bucket is the coarse progress class shown next to a task in the UI.
type Bucket string

const (
	BucketWaiting Bucket = "waiting"
	BucketRunning Bucket = "running"
	BucketDone    Bucket = "done"
	BucketError   Bucket = "error"
)

var (
	waitingStatuses = map[TaskStatus]struct{}{
		StatusLoginRequired:    {},
		StatusAwaitingLogin:    {},
		StatusMissingRecipient: {},
		StatusMissingBody:      {},
		StatusNeedsReview:      {},
		StatusManualRequired:   {},
	}
	runningStatuses = map[TaskStatus]struct{}{
		StatusOpened:          {},
		StatusPortalOpened:    {},
		StatusFormFilled:      {},
		StatusManual:          {},
		StatusSubmissionReady: {},
	}
)

const (
	DataStatus    = "status"
	DataTaskID    = "task_id"
	DataTaskTitle = "task_title"
	DataURL       = "url"
	DataStep      = "step"
)

type TaskResult struct {
	Success bool
	Message string
	Data    map[string]any
}

func NewResult(success bool, message string, status TaskStatus) TaskResult {
	r := TaskResult{Success: success, Message: message}
	if status != "" {
		r = r.With(DataStatus, string(status))
	}
	return r
}

func Succeeded(message string, status TaskStatus) TaskResult {
	return NewResult(true, message, status)
}

func Failed(message string) TaskResult {
	return NewResult(false, message, "")
}

// With returns a copy of r with key set in Data.
func (r TaskResult) With(key string, value any) TaskResult {
	data := make(map[string]any, len(r.Data)+1)
	for k, v := range r.Data {
		data[k] = v
	}
	data[key] = value
	r.Data = data
	return r
}

func (r TaskResult) Status() TaskStatus {
	if r.Data == nil {
		return ""
	}
	switch v := r.Data[DataStatus].(type) {
	case TaskStatus:
		return v
	case string:
		return TaskStatus(v)
	default:
		return ""
	}
}

func (r TaskResult) String(key string) string {
	if r.Data == nil {
		return ""
	}
	s, _ := r.Data[key].(string)
	return s
}

// Bucket classifies the result for progress display.
func (r TaskResult) Bucket() Bucket {
	status := r.Status()
	if _, ok := waitingStatuses[status]; ok {
		return BucketWaiting
	}
	if _, ok := runningStatuses[status]; ok {
		return BucketRunning
	}
	if r.Success {
		return BucketDone
	}
	return BucketError
}

// Headline is the first line of the message.
func (r TaskResult) Headline() string {
	line, _, _ := strings.Cut(strings.TrimSpace(r.Message), "\n")
	return line
}
