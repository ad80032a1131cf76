package commands

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-arcana/internal/game"
	"gopkg.in/yaml.v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// ExpandTemplate expands a template string using the provided data.
// The data can be any struct - templates access fields via {{ .FieldName }}.
func ExpandTemplate(tmplStr string, data any) (string, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// RuntimeContext is the data config templates render against.
type RuntimeContext struct {
	Actor   *game.Snapshot
	Target  *game.Snapshot
	Inputs  map[string]any
	Value   any
	Request *Request
}

// configStrings flattens a command config into template sources.
func configStrings(config map[string]any) map[string]string {
	out := make(map[string]string, len(config))
	for k, v := range config {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprint(v)
		}
		out[k] = s
	}
	return out
}

// Narrator renders the named narration lines the engine emits around actions:
// level ups, achievements, quest progress.
type Narrator struct {
	templates map[string]*template.Template
}

// LoadNarrator parses a YAML document mapping narration keys to templates.
func LoadNarrator(fsys fs.FS, name string) (*Narrator, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	n := &Narrator{templates: make(map[string]*template.Template, len(raw))}
	for key, src := range raw {
		tmpl, err := template.New(key).Funcs(templateFuncs).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("narration %q: %w", key, err)
		}
		n.templates[key] = tmpl
	}
	return n, nil
}

// Line renders a narration entry. Unknown keys render as the key itself so a
// missing entry is visible rather than silent.
func (n *Narrator) Line(key string, data any) (string, error) {
	tmpl, ok := n.templates[key]
	if !ok {
		return key, nil
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing narration %q: %w", key, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
