package prompts

import (
	_ "embed"
)

//go:embed help.tmpl
var HelpTemplate string
