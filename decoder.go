package fsdoc

import (
	"strconv"

	"go.uber.org/zap"
)

// Variables maps engineering variable names to decoded values. A value is a
// float64, a string (plain text or a formatted quantity), a []any of such
// scalars, or a nested Variables.
type Variables map[string]any

// Merge copies every entry of o into v, overwriting existing keys.
func (v Variables) Merge(o Variables) {
	for k, val := range o {
		v[k] = val
	}
}

// Decoder turns FeatureScript value trees into Variables. Fields with a
// registered Plugin are handed to the plugin instead.
type Decoder struct {
	reg       *Registry
	policy    UnknownPolicy
	formatter Formatter
	sink      EventSink
	log       *zap.Logger
}

// NewDecoder returns a decoder that sends plugin events to sink. A nil
// registry disables plugins and a nil sink discards events.
func NewDecoder(reg *Registry, sink EventSink) *Decoder {
	if sink == nil {
		sink = discardSink{}
	}
	return &Decoder{
		reg:       reg,
		formatter: Formatter{Normalize: true, Abbreviate: true},
		sink:      sink,
		log:       zap.NewNop(),
	}
}

// DecodeList decodes the scalar items of an array, skipping anything that
// is not a number, string, or quantity.
func DecodeList(nodes []Node) []any {
	// the default decoder drops unknown items, so there is no sink error
	out, _ := NewDecoder(nil, nil).decodeList(nodes, "")
	return out
}

// DecodeMap decodes payload, the value of the documenter field named field.
// It returns the variables and the template paths emitted while decoding.
// Errors only come from the event sink; malformed input yields a smaller
// result instead.
func (d *Decoder) DecodeMap(payload Node, field string) (Variables, []string, error) {
	return d.decodeMap(payload, field, field)
}

func (d *Decoder) decodeMap(payload Node, field, path string) (Variables, []string, error) {
	vars := Variables{}

	if field != "" {
		if p, ok := d.reg.get(field); ok {
			rec := &templateRecorder{next: d.sink}
			if err := p.HandleField(field, payload, rec); err != nil {
				return nil, nil, err
			}
			return vars, rec.paths, nil
		}
	}

	var templates []string
	switch payload.Kind {
	case KindMap, KindArray:
		for i, item := range payload.Items {
			key, ok := item.EntryKey()
			if !IsType(item, TypeMapEntry) || !ok || item.Value == nil {
				if err := d.skip(indexPath(path, i), item); err != nil {
					return nil, nil, err
				}
				continue
			}
			childPath := keyPath(path, key)
			value := *item.Value
			switch value.Kind {
			case KindMap:
				nested, tpl, err := d.decodeMap(value, "", childPath)
				if err != nil {
					return nil, nil, err
				}
				templates = append(templates, tpl...)
				vars[key] = nested
			case KindArray:
				list, err := d.decodeList(value.Items, childPath)
				if err != nil {
					return nil, nil, err
				}
				vars[key] = list
			case KindWithUnits:
				vars[key] = d.formatter.Format(value.Quantity.Magnitude, value.Quantity.Units)
			case KindNumber, KindString:
				vars[key], _ = value.Scalar()
			default:
				// a later unrecognised entry still wins over an earlier one
				delete(vars, key)
				if err := d.skip(childPath, value); err != nil {
					return nil, nil, err
				}
			}
		}
	case KindWithUnits:
		if field != "" {
			vars[field] = d.formatter.Format(payload.Quantity.Magnitude, payload.Quantity.Units)
		}
	case KindNumber, KindString:
		if field != "" {
			vars[field], _ = payload.Scalar()
		}
	default:
		if err := d.skip(path, payload); err != nil {
			return nil, nil, err
		}
	}
	return vars, templates, nil
}

func (d *Decoder) decodeList(nodes []Node, path string) ([]any, error) {
	out := make([]any, 0, len(nodes))
	for i, n := range nodes {
		switch n.Kind {
		case KindWithUnits:
			out = append(out, d.formatter.Format(n.Quantity.Magnitude, n.Quantity.Units))
		case KindNumber, KindString:
			v, _ := n.Scalar()
			out = append(out, v)
		default:
			if err := d.skip(indexPath(path, i), n); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (d *Decoder) skip(path string, n Node) error {
	if d.policy != UnknownAudit {
		return nil
	}
	d.log.Debug("skipping unrecognised node",
		zap.String("path", path),
		zap.String("type_name", n.TypeName),
		zap.Bool("malformed", n.Malformed))
	return d.sink.OnEvent(SkippedEvent{Path: path, TypeName: n.TypeName})
}

// templateRecorder remembers template paths on their way to the next sink.
type templateRecorder struct {
	next  EventSink
	paths []string
}

func (r *templateRecorder) OnEvent(ev Event) error {
	if t, ok := ev.(TemplateEvent); ok {
		r.paths = append(r.paths, t.Path)
	}
	return r.next.OnEvent(ev)
}

func keyPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
