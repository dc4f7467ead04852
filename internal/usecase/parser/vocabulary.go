package parser

import "web-assistant/internal/domain/entity"

// AppAlias maps spoken names to an executable.
type AppAlias struct {
	Name       string   `yaml:"name"`
	Executable string   `yaml:"executable"`
	Keywords   []string `yaml:"keywords"`
}

type SystemAction struct {
	Type     string   `yaml:"type"`
	Keywords []string `yaml:"keywords"`
}

type StepKeywords struct {
	Step     entity.Step `yaml:"step"`
	Keywords []string    `yaml:"keywords"`
}

// Vocabulary holds every keyword list the parser matches against.
// Keywords are matched case-insensitively on word boundaries.
type Vocabulary struct {
	Reset           []string       `yaml:"reset"`
	System          []SystemAction `yaml:"system"`
	Apps            []AppAlias     `yaml:"apps"`
	Search          []string       `yaml:"search"`
	AutoFill        []string       `yaml:"auto_fill"`
	FillAll         []string       `yaml:"fill_all"`
	Submit          []string       `yaml:"submit"`
	Enter           []string       `yaml:"enter"`
	Screenshot      []string       `yaml:"screenshot"`
	Email           []string       `yaml:"email"`
	ExplorePrograms []string       `yaml:"explore_programs"`
	AdmissionDates  []string       `yaml:"admission_dates"`
	WizardSteps     []StepKeywords `yaml:"wizard_steps"`
	Admissions      []string       `yaml:"admissions"`
	Policy          []string       `yaml:"policy"`
	Open            []string       `yaml:"open"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Reset: []string{"clear history", "reset session", "start over", "new session"},
		System: []SystemAction{
			{Type: "shutdown", Keywords: []string{"shutdown", "shut down", "turn off", "power off"}},
			{Type: "restart", Keywords: []string{"restart", "reboot"}},
			{Type: "sleep", Keywords: []string{"sleep", "hibernate"}},
		},
		Apps: []AppAlias{
			{Name: "notepad", Executable: "notepad.exe", Keywords: []string{"notepad"}},
			{Name: "calculator", Executable: "calc.exe", Keywords: []string{"calculator", "calc"}},
			{Name: "paint", Executable: "mspaint.exe", Keywords: []string{"open paint"}},
			{Name: "chrome", Executable: "chrome.exe", Keywords: []string{"open chrome"}},
			{Name: "edge", Executable: "msedge.exe", Keywords: []string{"open edge"}},
			{Name: "explorer", Executable: "explorer.exe", Keywords: []string{"open file explorer", "open explorer"}},
			{Name: "cmd", Executable: "cmd.exe", Keywords: []string{"open command prompt", "open cmd"}},
			{Name: "powershell", Executable: "powershell.exe", Keywords: []string{"open powershell"}},
			{Name: "word", Executable: "winword.exe", Keywords: []string{"open word"}},
			{Name: "excel", Executable: "excel.exe", Keywords: []string{"open excel"}},
			{Name: "outlook", Executable: "outlook.exe", Keywords: []string{"open outlook"}},
		},
		Search:     []string{"search for", "search", "google", "find"},
		AutoFill:   []string{"auto fill", "autofill", "fill this form", "fill the form", "detect form", "smart fill"},
		FillAll:    []string{"fill form", "fill out", "complete form", "enter data", "fill all"},
		Submit:     []string{"click submit", "submit form", "send form", "submit"},
		Enter:      []string{"press enter", "hit enter"},
		Screenshot: []string{"screenshot", "capture screen", "take a picture of the page"},
		Email: []string{
			"send email", "send an email", "compose email", "write email",
			"email to", "send mail", "compose mail",
		},
		ExplorePrograms: []string{"explore programs", "show programs", "list programs", "available programs", "programs offered"},
		AdmissionDates:  []string{"admission dates", "admission deadline", "deadlines", "important dates", "admission schedule"},
		WizardSteps: []StepKeywords{
			{Step: entity.StepPersonalInfo, Keywords: []string{"personal info", "personal information", "personal details", "my details"}},
			{Step: entity.StepSubmitApplication, Keywords: []string{
				"submit application", "send application", "final step", "finalize", "confirm",
			}},
			{Step: entity.StepSelectProgram, Keywords: []string{"program", "programme", "course", "degree", "select", "choose"}},
			{Step: entity.StepUploadDocuments, Keywords: []string{
				"document", "documents", "upload", "file", "mark sheet", "certificate", "proof",
			}},
		},
		Admissions: []string{"admission", "admissions", "apply", "application", "applicant", "enroll"},
		Policy:     []string{"policy", "policies"},
		Open:       []string{"open", "website", "browser", "go to", "navigate", "visit"},
	}
}
