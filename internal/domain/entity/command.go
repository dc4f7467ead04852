package entity

type Intent string

const (
	IntentOpenURL         Intent = "open_url"
	IntentSearch          Intent = "search"
	IntentOpenApplication Intent = "open_application"
	IntentSystemCommand   Intent = "system_command"
	IntentAutoFillForm    Intent = "auto_fill_form"
	IntentFillForm        Intent = "fill_form"
	IntentSendEmail       Intent = "send_email"
	IntentAdmissionsApply Intent = "admissions_apply"
	IntentExplorePrograms Intent = "explore_programs"
	IntentAdmissionDates  Intent = "admission_dates"
	IntentPolicyLookup    Intent = "policy_lookup"
	IntentScreenshot      Intent = "screenshot"
	IntentResetSession    Intent = "reset_session"
	IntentUnknown         Intent = "unknown"
)

func (i Intent) String() string {
	return string(i)
}

// Slot keys.
const (
	SlotURL        = "url"
	SlotQuery      = "query"
	SlotApp        = "app"
	SlotExecutable = "executable"
	SlotType       = "type"
	SlotAction     = "action"
	SlotField      = "field"
	SlotValue      = "value"
	SlotRecipient  = "recipient"
	SlotSubject    = "subject"
	SlotBody       = "body"
	SlotStep       = "step"
)

// Form-control actions carried in SlotAction.
const (
	ActionFillAll = "fill_all"
	ActionSubmit  = "submit"
	ActionEnter   = "enter"
	ActionType    = "type"
)

// Command is the parsed form of one user turn. It is not modified after parsing.
type Command struct {
	Intent  Intent
	RawText string
	Slots   map[string]string
}

func NewCommand(intent Intent, raw string, slots map[string]string) Command {
	if slots == nil {
		slots = map[string]string{}
	}
	return Command{Intent: intent, RawText: raw, Slots: slots}
}

func (c Command) Slot(key string) string {
	return c.Slots[key]
}
