package tasks

import (
	"context"
	"errors"
	"testing"

	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/browser/memory"
	"web-assistant/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func admissionsCmd(step entity.Step) entity.Command {
	return entity.NewCommand(entity.IntentAdmissionsApply, "apply", map[string]string{entity.SlotStep: string(step)})
}

func TestAdmissionsTask_OpensPortal(t *testing.T) {
	surface := memory.New()
	task := NewAdmissionsTask(surface, DefaultPortal(), logger.NewNop())

	res := task.Execute(context.Background(), newSession(), admissionsCmd(entity.StepInitial))

	require.True(t, res.Success)
	assert.Equal(t, entity.StatusPortalOpened, res.Status())
	assert.Equal(t, []string{"https://riphah.edu.pk/admissions/"}, surface.Visited())
	assert.Equal(t, "https://eportal.riphah.edu.pk/login", res.Data["eportal"])
}

func TestAdmissionsTask_PortalFallback(t *testing.T) {
	surface := memory.New()
	surface.FailStart(errors.New("launch failed"))
	task := NewAdmissionsTask(surface, DefaultPortal(), logger.NewNop())

	res := task.Execute(context.Background(), newSession(), admissionsCmd(""))

	assert.True(t, res.Success)
	assert.Equal(t, entity.StatusManualRequired, res.Status())
	assert.Contains(t, res.Message, "eportal.riphah.edu.pk")
}

func TestAdmissionsTask_DescribesSteps(t *testing.T) {
	task := NewAdmissionsTask(memory.New(), DefaultPortal(), logger.NewNop())
	sess := newSession()

	res := task.Execute(context.Background(), sess, admissionsCmd(entity.StepSelectProgram))
	assert.True(t, res.Success)
	assert.Equal(t, entity.StatusWorkflow, res.Status())
	assert.Equal(t, string(entity.StepSelectProgram), res.String(entity.DataStep))

	res = task.Execute(context.Background(), sess, admissionsCmd(entity.StepSubmitApplication))
	assert.True(t, res.Success)
	assert.Equal(t, entity.StatusSubmissionReady, res.Status())
	assert.Equal(t, entity.BucketRunning, res.Bucket())
}

func TestAdmissionsTask_RefusesEarlierStep(t *testing.T) {
	task := NewAdmissionsTask(memory.New(), DefaultPortal(), logger.NewNop())
	sess := newSession()
	sess.Workflow.Advance(entity.IntentAdmissionsApply, entity.StepUploadDocuments)

	res := task.Execute(context.Background(), sess, admissionsCmd(entity.StepPersonalInfo))

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "cannot be revisited")
	assert.Equal(t, entity.StepUploadDocuments, sess.Workflow.CurrentStep)
}

func TestAdmissionsTask_AfterSubmission(t *testing.T) {
	task := NewAdmissionsTask(memory.New(), DefaultPortal(), logger.NewNop())
	sess := newSession()
	sess.Workflow.Advance(entity.IntentAdmissionsApply, entity.StepSubmitApplication)
	sess.Workflow.FormData[entity.FormSubmitted] = true
	sess.Workflow.FormData[entity.FormApplicationID] = "RIPHAH-2026-0042"

	res := task.Execute(context.Background(), sess, admissionsCmd(entity.StepSubmitApplication))

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "RIPHAH-2026-0042")
}

func TestExploreProgramsAndDates(t *testing.T) {
	surface := memory.New()
	portal := DefaultPortal()
	ctx := context.Background()

	res := NewExploreProgramsTask(surface, portal, logger.NewNop()).Execute(ctx, newSession(), entity.Command{})
	assert.Equal(t, entity.StatusOpened, res.Status())
	assert.Contains(t, res.Message, "Faculty of Computing")

	res = NewAdmissionDatesTask(surface, portal, logger.NewNop()).Execute(ctx, newSession(), entity.Command{})
	assert.Equal(t, entity.StatusOpened, res.Status())

	assert.Equal(t, []string{portal.ProgramsURL, portal.DatesURL}, surface.Visited())
}

func TestExploreProgramsManualFallback(t *testing.T) {
	surface := memory.New()
	surface.FailStart(errors.New("boom"))

	res := NewExploreProgramsTask(surface, DefaultPortal(), logger.NewNop()).Execute(context.Background(), newSession(), entity.Command{})

	assert.True(t, res.Success)
	assert.Equal(t, entity.StatusManual, res.Status())
}

func TestPolicyLookupTask(t *testing.T) {
	res := NewPolicyLookupTask().Execute(context.Background(), newSession(), entity.Command{})
	assert.True(t, res.Success)
	assert.Equal(t, entity.BucketDone, res.Bucket())
}
