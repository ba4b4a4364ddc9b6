package generator

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
)

// Template text for the generated registration files. The generator renders
// payload builder calls into these skeletons and formats the result.

const fileHeaderTemplate = `// Code generated by gild. DO NOT EDIT.
// This file registers the annotation metadata declared in this package.

package {{.PackageName}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
`

const registerMetadataTemplate = `// metadataPayload is the payload half of one registration step.
type metadataPayload interface {
	Apply(gild.MetadataRegistry, gild.Site) error
}

// metadataStep pairs a declaration site with the payload recorded on it.
type metadataStep struct {
	site    gild.Site
	payload metadataPayload
}

// RegisterMetadata records the annotation metadata declared in package
// {{.PackageName}}. Call it once during wiring, before the registry freezes.
func RegisterMetadata(reg gild.MetadataRegistry) error {
	steps := []metadataStep{
{{- range .Steps}}
		{site: {{.Site}}, payload: {{.Payload}}},
{{- end}}
	}
	for _, step := range steps {
		if err := step.payload.Apply(reg, step.site); err != nil {
			return err
		}
	}
	return nil
}
`

const controllerBindingTemplate = `// Bind{{.StructName}} packages the controller's handlers for mounting.
func Bind{{.StructName}}(c *{{.StructName}}) mount.ControllerBinding {
{{- if .Handlers}}
	return mount.Bind("{{.StructName}}", map[string]mount.Handler{
{{- range .Handlers}}
		{{.Name}}: c.{{.Method}},
{{- end}}
	})
{{- else}}
	return mount.Bind("{{.StructName}}", map[string]mount.Handler{})
{{- end}}
}
`

// fileHeaderData fills the file-header template
type fileHeaderData struct {
	PackageName string
	Imports     []string // rendered import lines
}

// registerData fills the register-metadata template
type registerData struct {
	PackageName string
	Steps       []stepData
}

// stepData is one rendered registration step
type stepData struct {
	Site    string // gild.Site construction expression
	Payload string // payload builder call chain
}

// bindingData fills the controller-binding template
type bindingData struct {
	StructName string
	Handlers   []handlerData
}

// handlerData is one handler entry of a controller binding
type handlerData struct {
	Name   string // quoted handler name, the map key
	Method string // Go method name on the controller
}

// TemplateRegistry holds the named template texts used for code generation
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a registry with every generation template
// registered
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{templates: make(map[string]string)}
	registry.register()
	return registry
}

func (r *TemplateRegistry) register() {
	r.templates["file-header"] = fileHeaderTemplate
	r.templates["register-metadata"] = registerMetadataTemplate
	r.templates["controller-binding"] = controllerBindingTemplate
}

// Get returns the template text registered under the name
func (r *TemplateRegistry) Get(name string) (string, bool) {
	text, ok := r.templates[name]
	return text, ok
}

// MustGet returns the template text registered under the name, panicking
// when it does not exist. Generation templates are registered at package
// init, so a miss is a programming error.
func (r *TemplateRegistry) MustGet(name string) string {
	text, ok := r.templates[name]
	if !ok {
		panic(fmt.Sprintf("template %q is not registered", name))
	}
	return text
}

// Names lists the registered template names in sorted order
func (r *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTemplateRegistry is the registry used by generators created with
// NewGenerator
var DefaultTemplateRegistry = NewTemplateRegistry()

// ExecuteTemplate parses and executes a Go template with the given data
func ExecuteTemplate(name, templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
