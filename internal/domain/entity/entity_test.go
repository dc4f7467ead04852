package entity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskResult_Bucket(t *testing.T) {
	tests := []struct {
		name   string
		result TaskResult
		want   Bucket
	}{
		{"waiting beats failure", NewResult(false, "", StatusMissingBody), BucketWaiting},
		{"login required", Succeeded("", StatusLoginRequired), BucketWaiting},
		{"running", Succeeded("", StatusPortalOpened), BucketRunning},
		{"submission ready", Succeeded("", StatusSubmissionReady), BucketRunning},
		{"sent is done", Succeeded("", StatusSent), BucketDone},
		{"no status success", Succeeded("", ""), BucketDone},
		{"no status failure", Failed("x"), BucketError},
		{"unknown status failure", NewResult(false, "", "weird"), BucketError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Bucket())
		})
	}
}

func TestTaskResult_WithCopies(t *testing.T) {
	base := Succeeded("ok", StatusOpened)
	tagged := base.With(DataTaskID, "t1")

	assert.Equal(t, "t1", tagged.String(DataTaskID))
	assert.Empty(t, base.String(DataTaskID))
	assert.Equal(t, StatusOpened, tagged.Status())
}

func TestTaskResult_Headline(t *testing.T) {
	assert.Equal(t, "First line", Succeeded("\n First line\nsecond", "").Headline())
	assert.Empty(t, TaskResult{}.Headline())
}

func TestWorkflowState_AdvanceForwardOnly(t *testing.T) {
	w := NewWorkflowState()

	assert.True(t, w.Advance(IntentAdmissionsApply, StepSelectProgram))
	assert.False(t, w.Advance(IntentAdmissionsApply, StepPersonalInfo))
	assert.False(t, w.Advance(IntentAdmissionsApply, StepSelectProgram))
	assert.False(t, w.Advance(IntentAdmissionsApply, Step("bogus")))
	assert.Equal(t, StepSelectProgram, w.CurrentStep)

	w.Reset()
	assert.False(t, w.Active())
	assert.Empty(t, w.FormData)
}

func TestWorkflowState_Documents(t *testing.T) {
	w := NewWorkflowState()
	assert.Equal(t, 1, w.AddDocument("transcript"))
	assert.Equal(t, 2, w.AddDocument("photo"))
	assert.Equal(t, []string{"transcript", "photo"}, w.Documents())
}

func TestPendingEmail_Merge(t *testing.T) {
	e := &PendingEmail{Recipient: "a@x.com"}

	assert.False(t, e.Merge(EmailFields{}))
	assert.False(t, e.Merge(EmailFields{Recipient: "a@x.com"}))
	assert.Equal(t, StatusMissingBody, e.Missing())

	assert.True(t, e.Merge(EmailFields{Body: "hello"}))
	assert.Equal(t, "a@x.com", e.Recipient)
	assert.True(t, e.Ready())
	assert.Empty(t, e.Missing())
}

func TestPendingEmail_MissingOrder(t *testing.T) {
	e := &PendingEmail{}
	assert.Equal(t, StatusMissingRecipient, e.Missing())
}

func TestOutcomeFromError(t *testing.T) {
	assert.Equal(t, OutcomeFound, OutcomeFromError(nil))
	assert.Equal(t, OutcomeNotFound, OutcomeFromError(fmt.Errorf("by name: %w", ErrElementNotFound)))
	assert.Equal(t, OutcomeTimeout, OutcomeFromError(ErrTimeout))
	assert.Equal(t, OutcomeTimeout, OutcomeFromError(context.DeadlineExceeded))
	assert.Equal(t, OutcomeFailed, OutcomeFromError(errors.New("boom")))
}

func TestSession_Reset(t *testing.T) {
	s := NewSession("s1")
	s.Workflow.Advance(IntentAdmissionsApply, StepPersonalInfo)
	s.Email = &PendingEmail{TaskID: "x"}
	s.FormData["name"] = "Ann"

	s.Reset()

	assert.False(t, s.Workflow.Active())
	assert.Nil(t, s.Email)
	assert.Empty(t, s.FormData)
	assert.Equal(t, "s1", s.ID)
}

func TestFieldDescriptor_DisplayName(t *testing.T) {
	assert.Equal(t, "n", FieldDescriptor{Name: "n", ID: "i"}.DisplayName())
	assert.Equal(t, "p", FieldDescriptor{Placeholder: "p", LabelText: "l"}.DisplayName())
	assert.Equal(t, "Email", FieldDescriptor{LabelText: "Email"}.DisplayName())
}
