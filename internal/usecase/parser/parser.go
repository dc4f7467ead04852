// Package parser turns a free-text utterance into a Command using an
// ordered list of keyword rules. The first rule that matches wins.
package parser

import (
	"regexp"
	"strings"

	"web-assistant/internal/application/port/input"
	"web-assistant/internal/domain/entity"
)

var _ input.CommandParser = (*Parser)(nil)

var fillWithPattern = regexp.MustCompile(`(?is)\bfill\s+(.+?)\s+with\s+(.+)`)

type appMatcher struct {
	alias AppAlias
	set   KeywordSet
}

type systemMatcher struct {
	action string
	set    KeywordSet
}

type stepMatcher struct {
	step entity.Step
	set  KeywordSet
}

type Parser struct {
	reset           KeywordSet
	system          []systemMatcher
	apps            []appMatcher
	search          KeywordSet
	autoFill        KeywordSet
	fillAll         KeywordSet
	submit          KeywordSet
	enter           KeywordSet
	screenshot      KeywordSet
	email           KeywordSet
	explorePrograms KeywordSet
	admissionDates  KeywordSet
	steps           []stepMatcher
	admissions      KeywordSet
	policy          KeywordSet
	open            KeywordSet
	application     KeywordSet
}

func New(vocab Vocabulary) *Parser {
	p := &Parser{
		reset:           NewKeywordSet(vocab.Reset),
		search:          NewKeywordSet(vocab.Search),
		autoFill:        NewKeywordSet(vocab.AutoFill),
		fillAll:         NewKeywordSet(vocab.FillAll),
		submit:          NewKeywordSet(vocab.Submit),
		enter:           NewKeywordSet(vocab.Enter),
		screenshot:      NewKeywordSet(vocab.Screenshot),
		email:           NewKeywordSet(vocab.Email),
		explorePrograms: NewKeywordSet(vocab.ExplorePrograms),
		admissionDates:  NewKeywordSet(vocab.AdmissionDates),
		admissions:      NewKeywordSet(vocab.Admissions),
		policy:          NewKeywordSet(vocab.Policy),
		open:            NewKeywordSet(vocab.Open),
		application:     NewKeywordSet([]string{"application"}),
	}
	for _, s := range vocab.System {
		p.system = append(p.system, systemMatcher{action: s.Type, set: NewKeywordSet(s.Keywords)})
	}
	for _, a := range vocab.Apps {
		p.apps = append(p.apps, appMatcher{alias: a, set: NewKeywordSet(a.Keywords)})
	}
	for _, s := range vocab.WizardSteps {
		p.steps = append(p.steps, stepMatcher{step: s.Step, set: NewKeywordSet(s.Keywords)})
	}
	return p
}

// utterance carries the input text; bare is the text with the URL removed
// so keywords inside a link do not trigger rules.
type utterance struct {
	raw  string
	bare string
	url  string
}

type rule func(u utterance) (entity.Command, bool)

func (p *Parser) Parse(text string) entity.Command {
	raw := strings.TrimSpace(text)
	u := utterance{raw: raw, bare: raw}
	if url, ok := ExtractURL(raw); ok {
		u.url = url
		u.bare = strings.Replace(raw, url, " ", 1)
	}

	rules := []rule{
		p.parseReset,
		p.parseSystem,
		p.parseApplication,
		p.parseLeadingEmail,
		p.parseSearch,
		p.parseFormControl,
		p.parseEmail,
		p.parseDomain,
		p.parseOpen,
	}
	for _, r := range rules {
		if cmd, ok := r(u); ok {
			return cmd
		}
	}

	if u.url != "" {
		return entity.NewCommand(entity.IntentOpenURL, raw, map[string]string{entity.SlotURL: NormalizeURL(u.url)})
	}
	return entity.NewCommand(entity.IntentUnknown, raw, nil)
}

func (p *Parser) parseReset(u utterance) (entity.Command, bool) {
	raw := u.raw
	if p.reset.Match(raw) {
		return entity.NewCommand(entity.IntentResetSession, raw, nil), true
	}
	return entity.Command{}, false
}

func (p *Parser) parseSystem(u utterance) (entity.Command, bool) {
	raw := u.raw
	for _, s := range p.system {
		if s.set.Match(raw) {
			return entity.NewCommand(entity.IntentSystemCommand, raw, map[string]string{entity.SlotType: s.action}), true
		}
	}
	return entity.Command{}, false
}

func (p *Parser) parseApplication(u utterance) (entity.Command, bool) {
	raw := u.raw
	for _, a := range p.apps {
		if a.set.Match(raw) {
			return entity.NewCommand(entity.IntentOpenApplication, raw, map[string]string{
				entity.SlotApp:        a.alias.Name,
				entity.SlotExecutable: a.alias.Executable,
			}), true
		}
	}
	return entity.Command{}, false
}

// parseLeadingEmail claims utterances that open with an email phrase, so
// search or form words in the message do not steal them.
func (p *Parser) parseLeadingEmail(u utterance) (entity.Command, bool) {
	if start, ok := p.email.Index(u.raw); !ok || start != 0 {
		return entity.Command{}, false
	}
	return p.parseEmail(u)
}

func (p *Parser) parseEmail(u utterance) (entity.Command, bool) {
	raw := u.raw
	if !p.email.Match(raw) {
		return entity.Command{}, false
	}
	fields := ExtractEmailFields(raw)
	slots := map[string]string{}
	if fields.Recipient != "" {
		slots[entity.SlotRecipient] = fields.Recipient
	}
	if fields.Subject != "" {
		slots[entity.SlotSubject] = fields.Subject
	}
	if fields.Body != "" {
		slots[entity.SlotBody] = fields.Body
	}
	return entity.NewCommand(entity.IntentSendEmail, raw, slots), true
}

func (p *Parser) parseSearch(u utterance) (entity.Command, bool) {
	raw := u.raw
	if u.url != "" {
		return entity.Command{}, false
	}
	end, ok := p.search.Find(raw)
	if !ok {
		return entity.Command{}, false
	}
	query := strings.TrimSpace(raw[end:])
	return entity.NewCommand(entity.IntentSearch, raw, map[string]string{entity.SlotQuery: query}), true
}

func (p *Parser) parseFormControl(u utterance) (entity.Command, bool) {
	raw := u.raw
	lower := strings.ToLower(raw)

	if p.autoFill.Match(u.bare) {
		return entity.NewCommand(entity.IntentAutoFillForm, raw, nil), true
	}

	if m := fillWithPattern.FindStringSubmatch(raw); m != nil {
		field := strings.ToLower(strings.TrimSpace(m[1]))
		value := strings.TrimSpace(m[2])
		if field != "" && value != "" {
			return entity.NewCommand(entity.IntentFillForm, raw, map[string]string{
				entity.SlotField: field,
				entity.SlotValue: value,
			}), true
		}
	}

	if p.fillAll.Match(u.bare) {
		return entity.NewCommand(entity.IntentFillForm, raw, map[string]string{entity.SlotAction: entity.ActionFillAll}), true
	}

	if p.submit.Match(u.bare) && !p.application.Match(u.bare) {
		return entity.NewCommand(entity.IntentFillForm, raw, map[string]string{entity.SlotAction: entity.ActionSubmit}), true
	}

	if p.enter.Match(u.bare) {
		return entity.NewCommand(entity.IntentFillForm, raw, map[string]string{entity.SlotAction: entity.ActionEnter}), true
	}

	if strings.HasPrefix(lower, "type ") {
		return entity.NewCommand(entity.IntentFillForm, raw, map[string]string{
			entity.SlotAction: entity.ActionType,
			entity.SlotValue:  strings.TrimSpace(raw[len("type "):]),
		}), true
	}

	if p.screenshot.Match(u.bare) {
		return entity.NewCommand(entity.IntentScreenshot, raw, nil), true
	}

	return entity.Command{}, false
}

func (p *Parser) parseDomain(u utterance) (entity.Command, bool) {
	raw, bare := u.raw, u.bare
	if p.explorePrograms.Match(bare) {
		return entity.NewCommand(entity.IntentExplorePrograms, raw, nil), true
	}
	if p.admissionDates.Match(bare) {
		return entity.NewCommand(entity.IntentAdmissionDates, raw, nil), true
	}
	for _, s := range p.steps {
		if s.set.Match(bare) {
			return entity.NewCommand(entity.IntentAdmissionsApply, raw, map[string]string{entity.SlotStep: string(s.step)}), true
		}
	}
	if p.admissions.Match(bare) {
		return entity.NewCommand(entity.IntentAdmissionsApply, raw, map[string]string{entity.SlotStep: string(entity.StepInitial)}), true
	}
	if p.policy.Match(bare) {
		return entity.NewCommand(entity.IntentPolicyLookup, raw, nil), true
	}
	return entity.Command{}, false
}

func (p *Parser) parseOpen(u utterance) (entity.Command, bool) {
	if !p.open.Match(u.bare) {
		return entity.Command{}, false
	}
	return entity.NewCommand(entity.IntentOpenURL, u.raw, map[string]string{entity.SlotURL: NormalizeURL(u.url)}), true
}
