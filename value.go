package fsdoc

import (
	"encoding/json"
	"strconv"
)

// FeatureScript value type names as they appear in the "typeName" field.
const (
	TypeMap       = "BTFSValueMap"
	TypeMapEntry  = "BTFSValueMapEntry"
	TypeArray     = "BTFSValueArray"
	TypeNumber    = "BTFSValueNumber"
	TypeString    = "BTFSValueString"
	TypeWithUnits = "BTFSValueWithUnits"
)

// Kind is the closed set of node variants the decoder understands.
type Kind int

const (
	KindUnknown Kind = iota
	KindMap
	KindMapEntry
	KindArray
	KindNumber
	KindString
	KindWithUnits
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindMap:       "map",
	KindMapEntry:  "map-entry",
	KindArray:     "array",
	KindNumber:    "number",
	KindString:    "string",
	KindWithUnits: "with-units",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

var kindsByType = map[string]Kind{
	TypeMap:       KindMap,
	TypeMapEntry:  KindMapEntry,
	TypeArray:     KindArray,
	TypeNumber:    KindNumber,
	TypeString:    KindString,
	TypeWithUnits: KindWithUnits,
}

// Node is one value of a FeatureScript attribute tree.
//
// Only the fields that belong to Kind are populated: Items for maps and
// arrays, Key and Value for map entries, Number, Text, or Quantity for
// scalars. A node whose JSON did not carry the {"typeName", "message"}
// envelope, or whose message had the wrong shape, is Malformed and has
// KindUnknown.
type Node struct {
	Kind      Kind
	TypeName  string
	TypeTag   string
	Malformed bool

	Items    []Node
	Key      *Node
	Value    *Node
	Number   float64
	Text     string
	Quantity Quantity
}

type wireNode struct {
	TypeName string          `json:"typeName"`
	Message  json.RawMessage `json:"message"`
}

type wireList struct {
	TypeTag string `json:"typeTag"`
	Value   []Node `json:"value"`
}

type wireEntry struct {
	Key   *Node `json:"key"`
	Value *Node `json:"value"`
}

type wireNumber struct {
	TypeTag string  `json:"typeTag"`
	Value   float64 `json:"value"`
}

type wireString struct {
	TypeTag string `json:"typeTag"`
	Value   string `json:"value"`
}

type wireUnits struct {
	TypeTag     string  `json:"typeTag"`
	Value       float64 `json:"value"`
	UnitToPower []struct {
		Key   string  `json:"key"`
		Value float64 `json:"value"`
	} `json:"unitToPower"`
}

// UnmarshalJSON decodes a node from the vendor's wire format. Shape problems
// never fail the decode: they produce a Malformed node so that one bad value
// cannot abort a whole document.
func (n *Node) UnmarshalJSON(data []byte) error {
	*n = Node{}

	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil || w.TypeName == "" {
		n.Malformed = true
		return nil
	}
	n.TypeName = w.TypeName

	kind, known := kindsByType[w.TypeName]
	if !known {
		return nil
	}
	if len(w.Message) == 0 {
		n.Malformed = true
		return nil
	}

	ok := true
	switch kind {
	case KindMap, KindArray:
		var m wireList
		if ok = json.Unmarshal(w.Message, &m) == nil; ok {
			n.TypeTag = m.TypeTag
			n.Items = m.Value
		}
	case KindMapEntry:
		var m wireEntry
		if ok = json.Unmarshal(w.Message, &m) == nil && m.Key != nil && m.Value != nil; ok {
			n.Key, n.Value = m.Key, m.Value
		}
	case KindNumber:
		var m wireNumber
		if ok = json.Unmarshal(w.Message, &m) == nil; ok {
			n.TypeTag = m.TypeTag
			n.Number = m.Value
		}
	case KindString:
		var m wireString
		if ok = json.Unmarshal(w.Message, &m) == nil; ok {
			n.TypeTag = m.TypeTag
			n.Text = m.Value
		}
	case KindWithUnits:
		var m wireUnits
		if ok = json.Unmarshal(w.Message, &m) == nil; ok {
			n.TypeTag = m.TypeTag
			n.Quantity.Magnitude = m.Value
			for _, u := range m.UnitToPower {
				n.Quantity.Units = append(n.Quantity.Units, UnitPower{Unit: Unit(u.Key), Exponent: int(u.Value)})
			}
		}
	}
	if !ok {
		n.Malformed = true
		return nil
	}
	n.Kind = kind
	return nil
}

// IsType reports whether n carries one of the given type names. Only the
// type name is compared: a node whose payload is malformed still has a type.
func IsType(n Node, names ...string) bool {
	if n.TypeName == "" {
		return false
	}
	for _, name := range names {
		if n.TypeName == name {
			return true
		}
	}
	return false
}

// EntryKey returns the key of a map entry. String keys are returned as is
// and numeric keys are rendered the way they would print as a map key.
func (n Node) EntryKey() (string, bool) {
	if n.Kind != KindMapEntry || n.Key == nil {
		return "", false
	}
	switch n.Key.Kind {
	case KindString:
		return n.Key.Text, true
	case KindNumber:
		return formatPyFloat(n.Key.Number), true
	}
	return "", false
}

// Scalar returns the raw payload of a number or string node.
func (n Node) Scalar() (any, bool) {
	switch n.Kind {
	case KindNumber:
		return n.Number, true
	case KindString:
		return n.Text, true
	}
	return nil, false
}

// Constructors used by callers that build trees in code.

func MapNode(typeTag string, entries ...Node) Node {
	return Node{Kind: KindMap, TypeName: TypeMap, TypeTag: typeTag, Items: entries}
}

func Entry(key string, value Node) Node {
	k := StringNode(key)
	return Node{Kind: KindMapEntry, TypeName: TypeMapEntry, Key: &k, Value: &value}
}

func ArrayNode(items ...Node) Node {
	return Node{Kind: KindArray, TypeName: TypeArray, Items: items}
}

func NumberNode(v float64) Node {
	return Node{Kind: KindNumber, TypeName: TypeNumber, Number: v}
}

func StringNode(s string) Node {
	return Node{Kind: KindString, TypeName: TypeString, Text: s}
}

func UnitsNode(magnitude float64, units ...UnitPower) Node {
	return Node{Kind: KindWithUnits, TypeName: TypeWithUnits, Quantity: Quantity{Magnitude: magnitude, Units: units}}
}
