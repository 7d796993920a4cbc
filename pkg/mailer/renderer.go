package mailer

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"
	"text/template/parse"

	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/mailtemplated/pkg/section"
)

// baseTemplateName names the generated layout every template is executed through.
const baseTemplateName = "mailtemplated/base"

// maxExtendsDepth bounds "extends" chains.
const maxExtendsDepth = 16

// Renderer resolves templates from a filesystem.
//
// Every template is executed through a generated base layout that prints
// each section between its markers:
//
//	{{index . "TAG_START_SUBJECT"}}{{block "subject" .}}{{end}}{{index . "TAG_END_SUBJECT"}}
//
// so a template only defines the sections it needs:
//
//	{{define "subject"}}Hello {{.name}}{{end}}
//	{{define "body"}}{{.name}}, this is a plain text message.{{end}}
//
// Text outside of any define becomes the body unless the template defines
// "body" itself. YAML frontmatter may set "extends" (parent template whose
// sections are inherited and can be overridden) and static "subject",
// "from_email" and "extra_headers" sections. Markdown templates (".md") get
// an html section converted from the rendered body.
type Renderer struct {
	fs      fs.FS
	md      goldmark.Markdown
	markers *section.Markers
	base    string

	// Caches (safe: stores parsed structure, not rendered output)
	cache       map[string]*compiledTemplate
	templateDir string

	mu sync.RWMutex
}

// NewRenderer creates a renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	r, err := NewRendererWithConfig(filesystem, RendererConfig{})
	if err != nil {
		// The default format is validated when it is set.
		panic(err)
	}
	return r
}

// NewRendererWithConfig creates a renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, cfg RendererConfig) (*Renderer, error) {
	if cfg.Format == (section.Format{}) {
		cfg.Format = section.Default()
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "."
	}

	markers, err := section.For(cfg.Format)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		fs:      filesystem,
		markers: markers,
		base:    baseLayout(markers),
		md: goldmark.New(
			goldmark.WithExtensions(NewButtonExtension(cfg.ButtonClass, cfg.ButtonStyle)),
		),
		cache:       make(map[string]*compiledTemplate),
		templateDir: cfg.TemplateDir,
	}, nil
}

// baseLayout prints every section wrapped in its marker variables.
func baseLayout(m *section.Markers) string {
	var b strings.Builder
	for _, name := range section.All {
		mk, _ := m.Marker(name)
		fmt.Fprintf(&b, "{{index . %q}}{{block %q .}}{{end}}{{index . %q}}\n",
			mk.StartVar, string(name), mk.EndVar)
	}
	return b.String()
}

// Resolve implements TemplateProvider.
func (r *Renderer) Resolve(name string) (Template, error) {
	r.mu.RLock()
	if cached, ok := r.cache[name]; ok {
		r.mu.RUnlock()
		return cached, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	compiled, err := r.compile(name)
	if err != nil {
		return nil, err
	}
	r.cache[name] = compiled
	return compiled, nil
}

// Markdown converts markdown to html using the renderer's goldmark setup.
func (r *Renderer) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}

// load reads a template and its "extends" ancestors, root first.
func (r *Renderer) load(name string) ([]namedSource, error) {
	var chain []namedSource
	seen := make(map[string]bool)

	for current := name; current != ""; {
		if seen[current] || len(chain) >= maxExtendsDepth {
			return nil, fmt.Errorf("%w: %s", ErrExtendsCycle, name)
		}
		seen[current] = true

		content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, current))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, current, err)
		}

		src, err := ParseSource(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, current, err)
		}

		parent, err := src.String("extends")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, current, err)
		}

		chain = append(chain, namedSource{name: current, Source: src})
		current = parent
	}

	// Ancestors first so that descendants override their sections.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

type namedSource struct {
	*Source
	name string
}

// compile builds the template set for name: base layout, ancestors, template.
func (r *Renderer) compile(name string) (*compiledTemplate, error) {
	chain, err := r.load(name)
	if err != nil {
		return nil, err
	}

	var set *texttemplate.Template
	funcs := texttemplate.FuncMap{
		"markdown": r.Markdown,
		// section renders another section of the same message.
		"section": func(name string, data any) (string, error) {
			var buf bytes.Buffer
			if err := set.ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			return buf.String(), nil
		},
	}

	set, err = texttemplate.New(baseTemplateName).Funcs(funcs).Parse(r.base)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse base layout: %v", ErrRenderFailed, err)
	}

	defined := make(map[section.Name]bool, len(section.All))
	define := func(sec section.Name, tree *parse.Tree) error {
		if _, err := set.AddParseTree(string(sec), tree); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
		defined[sec] = true
		return nil
	}

	for _, src := range chain {
		// Frontmatter first: defines in the template body override it.
		for _, sec := range []section.Name{section.Subject, section.From, section.ExtraHeaders} {
			var value string
			if sec == section.ExtraHeaders {
				value, err = src.Headers(string(sec))
			} else {
				value, err = src.String(string(sec))
			}
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, src.name, err)
			}
			if value == "" {
				continue
			}
			t, err := texttemplate.New(string(sec)).Funcs(funcs).Parse(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: frontmatter %s: %v", ErrRenderFailed, src.name, sec, err)
			}
			if err := define(sec, t.Tree); err != nil {
				return nil, err
			}
		}

		own, err := texttemplate.New(src.name).Funcs(funcs).Parse(src.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse template %s: %v", ErrRenderFailed, src.name, err)
		}

		for _, t := range own.Templates() {
			if t.Name() == src.name || t.Tree == nil {
				continue
			}
			if sec := section.Name(t.Name()); sec.Valid() {
				if parse.IsEmptyTree(t.Tree.Root) {
					continue
				}
				if err := define(sec, t.Tree); err != nil {
					return nil, err
				}
				continue
			}
			// Helper templates shared between sections.
			if _, err := set.AddParseTree(t.Name(), t.Tree); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, src.name, err)
			}
		}

		// Text outside of defines is the body.
		if own.Tree != nil && !parse.IsEmptyTree(own.Tree.Root) && own.Lookup(string(section.Body)) == nil {
			if err := define(section.Body, own.Tree); err != nil {
				return nil, err
			}
		}
	}

	if !defined[section.HTML] && defined[section.Body] && strings.EqualFold(path.Ext(name), ".md") {
		t, err := texttemplate.New(string(section.HTML)).Funcs(funcs).Parse(`{{markdown (section "body" .)}}`)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}
		if err := define(section.HTML, t.Tree); err != nil {
			return nil, err
		}
	}

	return &compiledTemplate{name: name, set: set, markers: r.markers}, nil
}

// compiledTemplate is a parsed template set bound to a base layout.
type compiledTemplate struct {
	set     *texttemplate.Template
	markers *section.Markers
	name    string
}

// Render implements Template.
// Marker variables missing from data are filled in from the renderer's format.
func (t *compiledTemplate) Render(data map[string]any) (string, error) {
	vars := t.markers.Vars()
	for k, v := range data {
		vars[k] = v
	}

	var buf bytes.Buffer
	if err := t.set.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRenderFailed, t.name, err)
	}
	return buf.String(), nil
}
