package fsdoc

import (
	"encoding/json"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultTypeTag is the FeatureScript type tag of documenter attributes.
const DefaultTypeTag = "Documenter"

// DefaultFields are the documenter fields extracted when none are given.
var DefaultFields = []string{"variables", "template", "index", "process"}

// responseValuePath locates the attribute list in a FeatureScript
// evaluation response.
const responseValuePath = "result.message.value"

func NewExtractor(reg *Registry, opts ...func(*Extractor)) *Extractor {
	e := &Extractor{
		reg:       reg,
		policy:    UnknownDrop,
		typeTag:   DefaultTypeTag,
		formatter: Formatter{Normalize: true, Abbreviate: true},
		sink:      discardSink{},
		log:       zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func WithUnknownPolicy(p UnknownPolicy) func(*Extractor) {
	return func(e *Extractor) { e.policy = p }
}

func WithTypeTag(tag string) func(*Extractor) {
	return func(e *Extractor) { e.typeTag = tag }
}

func WithFormatter(f Formatter) func(*Extractor) {
	return func(e *Extractor) { e.formatter = f }
}

// WithSink forwards every event to sink, e.g. a Stager.
func WithSink(sink EventSink) func(*Extractor) {
	return func(e *Extractor) {
		if sink != nil {
			e.sink = sink
		}
	}
}

func WithLogger(l *zap.Logger) func(*Extractor) {
	return func(e *Extractor) {
		if l != nil {
			e.log = l
		}
	}
}

// Result is the output of one extraction.
type Result struct {
	Variables Variables `json:"variables" yaml:"variables"`
	Templates []string  `json:"templates" yaml:"templates"`
	Processes []string  `json:"processes" yaml:"processes"`
}

// Extract walks the documenter attributes and decodes the requested fields.
//
// Attributes are maps tagged with the extractor's type tag. Each holds
// entries whose values are arrays of documents, and each document is a map
// whose entries are the fields. Variables from later matches overwrite
// earlier ones. Template paths are returned as "./<dir>/<file>".
func (e *Extractor) Extract(attributes []Node, fields ...string) (*Result, error) {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	wanted := make(map[string]bool, len(fields))
	for _, f := range fields {
		wanted[f] = true
	}

	col := &collector{next: e.sink}
	dec := &Decoder{
		reg:       e.reg,
		policy:    e.policy,
		formatter: e.formatter,
		sink:      col,
		log:       e.log,
	}

	res := &Result{Variables: Variables{}}
	var templates []string
	matched := 0
	for _, attr := range attributes {
		if !IsType(attr, TypeMap) || attr.TypeTag != e.typeTag {
			continue
		}
		for _, group := range attr.Items {
			if !IsType(group, TypeMapEntry) || group.Value == nil {
				continue
			}
			for _, doc := range group.Value.Items {
				for _, entry := range doc.Items {
					if !IsType(entry, TypeMapEntry) || entry.Value == nil {
						continue
					}
					key, ok := entry.EntryKey()
					if !ok || !wanted[key] {
						continue
					}
					matched++
					vars, tpl, err := dec.DecodeMap(*entry.Value, key)
					if err != nil {
						return nil, fmt.Errorf("decoding field %q: %w", key, err)
					}
					res.Variables.Merge(vars)
					templates = append(templates, tpl...)
				}
			}
		}
	}

	for _, t := range templates {
		res.Templates = append(res.Templates, TemplateRef(t))
	}
	res.Processes = col.processes

	e.log.Debug("extracted documenter fields",
		zap.Strings("fields", fields),
		zap.Int("matched", matched),
		zap.Int("variables", len(res.Variables)),
		zap.Int("templates", len(res.Templates)))
	return res, nil
}

// ExtractResponse reads a FeatureScript evaluation response and extracts
// the attribute list found at result.message.value.
func (e *Extractor) ExtractResponse(r io.Reader, fields ...string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	attrs, err := ParseResponse(data)
	if err != nil {
		return nil, err
	}
	return e.Extract(attrs, fields...)
}

// ParseResponse returns the attribute nodes of an evaluation response.
func ParseResponse(data []byte) ([]Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, NewEnvelopeError(responseValuePath, "response is not valid JSON")
	}
	value := gjson.GetBytes(data, responseValuePath)
	if !value.Exists() {
		return nil, NewEnvelopeError(responseValuePath, "missing")
	}
	if !value.IsArray() {
		return nil, NewEnvelopeError(responseValuePath, "not an array")
	}
	var nodes []Node
	if err := json.Unmarshal([]byte(value.Raw), &nodes); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", responseValuePath, err)
	}
	return nodes, nil
}

// TemplateRef shortens a template path to "./<parent-dir>/<file>".
func TemplateRef(p string) string {
	p = filepath.ToSlash(p)
	dir := path.Base(path.Dir(p))
	if dir == "." || dir == "/" {
		return "./" + path.Base(p)
	}
	return "./" + dir + "/" + path.Base(p)
}

// collector records process names and forwards every event.
type collector struct {
	next      EventSink
	processes []string
}

func (c *collector) OnEvent(ev Event) error {
	if p, ok := ev.(ProcessEvent); ok {
		c.processes = append(c.processes, p.Name)
	}
	return c.next.OnEvent(ev)
}
