package prompts

import (
	"bytes"
	"sort"
	"strings"
	"text/template"

	"web-assistant/internal/usecase/parser"
)

type CommandHelp struct {
	Usage       string
	Description string
}

type HelpData struct {
	Commands    []CommandHelp
	Apps        []string
	Institution string
}

func DefaultCommands() []CommandHelp {
	return []CommandHelp{
		{"open [website]", "Open any website"},
		{"search [query]", "Search on Google"},
		{"open [app]", "Open application"},
		{"fill form", "Form filling help"},
		{"auto fill", "Fill the form on the current page"},
		{"send email to [address]", "Compose an email"},
		{"apply for admission", "Start an admission application"},
		{"take a screenshot", "Save the current page"},
		{"clear history", "Start over"},
	}
}

// NewHelpData lists the commands with the application names of vocab.
func NewHelpData(vocab parser.Vocabulary, institution string) HelpData {
	apps := make([]string, 0, len(vocab.Apps))
	for _, a := range vocab.Apps {
		apps = append(apps, a.Name)
	}
	sort.Strings(apps)
	return HelpData{
		Commands:    DefaultCommands(),
		Apps:        apps,
		Institution: institution,
	}
}

// GenerateHelp renders baseTemplate with data.
func GenerateHelp(baseTemplate string, data HelpData) (string, error) {
	tmpl, err := template.New("help").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
