package fsdoc

// Event is emitted while decoding a documenter field that has a side
// effect beyond the variable mapping.
type Event interface{ isEvent() }

// TemplateEvent asks for a template file to be staged into the docs tree.
type TemplateEvent struct {
	Path string
}

func (TemplateEvent) isEvent() {}

// IndexEvent asks for an index document to be merged into the docs index.
type IndexEvent struct {
	Source string
}

func (IndexEvent) isEvent() {}

// ProcessEvent names a treatment process whose description should be merged
// into the process document.
type ProcessEvent struct {
	Name string
}

func (ProcessEvent) isEvent() {}

// SkippedEvent reports a node the decoder did not recognise. It is only
// emitted under UnknownAudit.
type SkippedEvent struct {
	Path     string
	TypeName string
}

func (SkippedEvent) isEvent() {}

// ===== Sink =====

type EventSink interface {
	OnEvent(ev Event) error
}

type EventSinkFunc func(ev Event) error

func (f EventSinkFunc) OnEvent(ev Event) error { return f(ev) }

// discardSink accepts every event.
type discardSink struct{}

func (discardSink) OnEvent(Event) error { return nil }

// ===== Plugins =====

type Plugin interface {
	// Names returns the documenter field names handled by this plugin (e.g., ["template"]).
	Names() []string
	// HandleField is called with the value of the matching field instead of
	// decoding it into variables.
	HandleField(field string, payload Node, sink EventSink) error
}

type Registry struct {
	byName map[string]Plugin
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Plugin{}}
}

// DefaultRegistry returns a registry with the template, index, and process
// plugins registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TemplatePlugin{})
	r.Register(IndexPlugin{})
	r.Register(ProcessPlugin{})
	return r
}

func (r *Registry) Register(p Plugin) {
	for _, n := range p.Names() {
		r.byName[n] = p
	}
}

func (r *Registry) get(name string) (Plugin, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byName[name]
	return p, ok
}

// TemplatePlugin emits a TemplateEvent for a template path, or one per path
// when the field holds an array.
type TemplatePlugin struct{}

func (TemplatePlugin) Names() []string { return []string{"template"} }

func (TemplatePlugin) HandleField(_ string, payload Node, sink EventSink) error {
	for _, s := range stringPayloads(payload) {
		if err := sink.OnEvent(TemplateEvent{Path: s}); err != nil {
			return err
		}
	}
	return nil
}

// IndexPlugin emits an IndexEvent for a non-empty index source path.
type IndexPlugin struct{}

func (IndexPlugin) Names() []string { return []string{"index"} }

func (IndexPlugin) HandleField(_ string, payload Node, sink EventSink) error {
	for _, s := range stringPayloads(payload) {
		if err := sink.OnEvent(IndexEvent{Source: s}); err != nil {
			return err
		}
	}
	return nil
}

// ProcessPlugin emits a ProcessEvent for a non-empty process name.
type ProcessPlugin struct{}

func (ProcessPlugin) Names() []string { return []string{"process"} }

func (ProcessPlugin) HandleField(_ string, payload Node, sink EventSink) error {
	for _, s := range stringPayloads(payload) {
		if err := sink.OnEvent(ProcessEvent{Name: s}); err != nil {
			return err
		}
	}
	return nil
}

// stringPayloads returns the non-empty strings of a string node or of the
// string items of an array node.
func stringPayloads(n Node) []string {
	var out []string
	switch n.Kind {
	case KindString:
		if n.Text != "" {
			out = append(out, n.Text)
		}
	case KindArray:
		for _, item := range n.Items {
			if item.Kind == KindString && item.Text != "" {
				out = append(out, item.Text)
			}
		}
	}
	return out
}
