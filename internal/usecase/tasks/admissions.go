package tasks

import (
	"context"
	"fmt"
	"strings"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
)

// Portal describes the university site behind the admission intents.
type Portal struct {
	Institution   string   `yaml:"institution"`
	AdmissionsURL string   `yaml:"admissions_url"`
	ProgramsURL   string   `yaml:"programs_url"`
	DatesURL      string   `yaml:"dates_url"`
	EPortalURL    string   `yaml:"eportal_url"`
	Faculties     []string `yaml:"faculties"`
}

func DefaultPortal() Portal {
	return Portal{
		Institution:   "Riphah International University",
		AdmissionsURL: "https://riphah.edu.pk/admissions/",
		ProgramsURL:   "https://riphah.edu.pk/academics/programs/",
		DatesURL:      "https://riphah.edu.pk/admissions/dates/",
		EPortalURL:    "https://eportal.riphah.edu.pk/login",
		Faculties: []string{
			"Faculty of Medicine & Health Sciences",
			"Faculty of Engineering & Applied Sciences",
			"Faculty of Management Sciences",
			"Faculty of Computing",
			"Faculty of Social Sciences",
			"Faculty of Islamic Studies",
			"Faculty of Pharmacy",
			"Faculty of Allied Health Sciences",
		},
	}
}

// AdmissionsTask opens the admission portal and explains each wizard step.
// The executor moves the session's workflow to the requested step when the
// result is successful, so a request for an earlier step fails here.
type AdmissionsTask struct {
	surface output.AutomationSurface
	portal  Portal
	logger  output.LoggerPort
}

var _ output.TaskHandler = (*AdmissionsTask)(nil)

func NewAdmissionsTask(surface output.AutomationSurface, portal Portal, logger output.LoggerPort) *AdmissionsTask {
	return &AdmissionsTask{surface: surface, portal: portal, logger: logger}
}

func (t *AdmissionsTask) Intent() entity.Intent {
	return entity.IntentAdmissionsApply
}

func (t *AdmissionsTask) Execute(ctx context.Context, sess *entity.Session, cmd entity.Command) entity.TaskResult {
	step := entity.Step(cmd.Slot(entity.SlotStep))
	if !step.Valid() {
		step = entity.StepInitial
	}
	if step == entity.StepInitial {
		return t.openPortal(ctx)
	}

	wf := sess.Workflow
	if wf.Submitted() {
		return entity.Failed(fmt.Sprintf(
			"Your application was already submitted.\nApplication ID: %s\n\nSay 'clear history' to start a new application.",
			wf.Text(entity.FormApplicationID),
		)).With(entity.DataStep, string(wf.CurrentStep))
	}
	if step.Index() < wf.CurrentStep.Index() {
		return entity.Failed(fmt.Sprintf(
			"You are already past the %s step and steps cannot be revisited.\n"+
				"Continue with the current step (%s), or say 'clear history' to start over.",
			stepTitle(step), stepTitle(wf.CurrentStep),
		)).With(entity.DataStep, string(wf.CurrentStep))
	}

	return t.describe(step, wf)
}

func (t *AdmissionsTask) openPortal(ctx context.Context) entity.TaskResult {
	url := t.portal.AdmissionsURL
	if err := openPage(ctx, t.surface, url); err != nil {
		t.logger.Warn("Failed to open admission portal", "url", url, "error", err)
		return entity.Succeeded(
			fmt.Sprintf("%s Admission Application\n\nPlease open the admission portal yourself:\n"+
				"Admissions: %s\nApply Online: %s\n\n"+
				"Steps to Apply:\n1. Visit the ePortal link above\n2. Create an account\n3. Fill in your details\n"+
				"4. Select your program\n5. Upload required documents\n6. Submit application",
				t.portal.Institution, url, t.portal.EPortalURL),
			entity.StatusManualRequired,
		).With(entity.DataURL, url).With("eportal", t.portal.EPortalURL)
	}

	return entity.Succeeded(
		fmt.Sprintf("%s Admission Portal Opened\nURL: %s\n\n"+
			"Admission Process:\n1. Explore programs of interest\n2. Review eligibility criteria and deadlines\n"+
			"3. Submit online application through secure portal\n4. Attend required interviews or assessments\n"+
			"5. Receive admission decision\n\n"+
			"Next Steps:\n   - Say \"personal info\" to start your application here\n   - Or visit: %s\n\n"+
			"Say \"explore programs\" to see available programs\nSay \"admission dates\" for important deadlines",
			t.portal.Institution, url, t.portal.EPortalURL),
		entity.StatusPortalOpened,
	).With(entity.DataURL, url).With("eportal", t.portal.EPortalURL)
}

func (t *AdmissionsTask) describe(step entity.Step, wf *entity.WorkflowState) entity.TaskResult {
	var msg string
	status := entity.StatusWorkflow
	switch step {
	case entity.StepPersonalInfo:
		msg = "Step 2: Personal Information\n\nPlease provide:\n" + bullets([]string{
			"Full Name", "Email Address", "Phone Number", "Date of Birth", "Address", "Country",
		}) + "\n\nType your full name first, then 'next' when done."
	case entity.StepSelectProgram:
		msg = "Step 3: Program Selection\n\nAvailable Programs:\n" + bullets([]string{
			"Bachelor of Science (BS)", "Bachelor of Arts (BA)", "Bachelor of Commerce (B.Com)",
			"Master of Science (MS)", "Master of Arts (MA)",
		}) + "\n\nType the program you want to apply for."
	case entity.StepUploadDocuments:
		msg = "Step 4: Document Upload\n\nRequired documents:\n" + bullets([]string{
			"Mark Sheet or Transcript", "Identity Proof", "Address Proof",
			"Character Certificate", "Medical Fitness Certificate", "Passport Photo",
		}) + "\n\nName each document you are providing, then type 'next'."
	case entity.StepSubmitApplication:
		status = entity.StatusSubmissionReady
		msg = fmt.Sprintf("Step 5: Final Submission\n\nReview your application:\nName: %s\nProgram: %s\nDocuments: %d\n\n"+
			"Note: Once submitted, the application cannot be edited.\n\nType \"confirm\" to submit.",
			orNone(wf.Text(entity.FormName)), orNone(wf.Text(entity.FormProgram)), len(wf.Documents()))
	}
	return entity.Succeeded(msg, status).With(entity.DataStep, string(step))
}

func stepTitle(s entity.Step) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func orNone(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

type ExploreProgramsTask struct {
	surface output.AutomationSurface
	portal  Portal
	logger  output.LoggerPort
}

var _ output.TaskHandler = (*ExploreProgramsTask)(nil)

func NewExploreProgramsTask(surface output.AutomationSurface, portal Portal, logger output.LoggerPort) *ExploreProgramsTask {
	return &ExploreProgramsTask{surface: surface, portal: portal, logger: logger}
}

func (t *ExploreProgramsTask) Intent() entity.Intent {
	return entity.IntentExplorePrograms
}

func (t *ExploreProgramsTask) Execute(ctx context.Context, _ *entity.Session, _ entity.Command) entity.TaskResult {
	url := t.portal.ProgramsURL
	faculties := bullets(t.portal.Faculties)

	if err := openPage(ctx, t.surface, url); err != nil {
		t.logger.Warn("Failed to open programs page", "url", url, "error", err)
		return entity.Succeeded(
			fmt.Sprintf("%s Programs\n\nPlease visit: %s\n\nAvailable Faculties:\n%s", t.portal.Institution, url, faculties),
			entity.StatusManual,
		).With(entity.DataURL, url)
	}

	return entity.Succeeded(
		fmt.Sprintf("%s Programs\n\nOpening programs page...\nURL: %s\n\nAvailable Faculties:\n%s\n\n"+
			"Browse the website to see specific programs",
			t.portal.Institution, url, faculties),
		entity.StatusOpened,
	).With(entity.DataURL, url)
}

type AdmissionDatesTask struct {
	surface output.AutomationSurface
	portal  Portal
	logger  output.LoggerPort
}

var _ output.TaskHandler = (*AdmissionDatesTask)(nil)

func NewAdmissionDatesTask(surface output.AutomationSurface, portal Portal, logger output.LoggerPort) *AdmissionDatesTask {
	return &AdmissionDatesTask{surface: surface, portal: portal, logger: logger}
}

func (t *AdmissionDatesTask) Intent() entity.Intent {
	return entity.IntentAdmissionDates
}

func (t *AdmissionDatesTask) Execute(ctx context.Context, _ *entity.Session, _ entity.Command) entity.TaskResult {
	url := t.portal.DatesURL
	checklist := bullets([]string{
		"Application submission deadlines",
		"Entry test dates",
		"Interview schedules",
		"Enrollment timelines",
	})

	if err := openPage(ctx, t.surface, url); err != nil {
		t.logger.Warn("Failed to open admission dates page", "url", url, "error", err)
		return entity.Succeeded(
			fmt.Sprintf("%s Admission Dates\n\nPlease visit: %s\n\nCheck the website for:\n%s", t.portal.Institution, url, checklist),
			entity.StatusManual,
		).With(entity.DataURL, url)
	}

	return entity.Succeeded(
		fmt.Sprintf("%s Admission Dates\n\nOpening admission dates page...\nURL: %s\n\nCheck the page for:\n%s",
			t.portal.Institution, url, checklist),
		entity.StatusOpened,
	).With(entity.DataURL, url)
}

type PolicyLookupTask struct{}

var _ output.TaskHandler = (*PolicyLookupTask)(nil)

func NewPolicyLookupTask() *PolicyLookupTask {
	return &PolicyLookupTask{}
}

func (t *PolicyLookupTask) Intent() entity.Intent {
	return entity.IntentPolicyLookup
}

func (t *PolicyLookupTask) Execute(_ context.Context, _ *entity.Session, _ entity.Command) entity.TaskResult {
	return entity.Succeeded(
		"Policy lookup\n\nTell me which policy you need, for example: \"search refund policy\".\n"+
			"I will open the search results in the browser.",
		"",
	)
}
