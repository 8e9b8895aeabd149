package recordmap

import "strings"

// FieldType represents the semantic type of a schema field.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt64
	TypeInt32
	TypeFloat64
	TypeBool
	TypeDateTime
	TypeDateTimeOffset
)

// String returns a human-readable name for the type.
func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeInt64:
		return "Int64"
	case TypeInt32:
		return "Int32"
	case TypeFloat64:
		return "Float64"
	case TypeBool:
		return "Bool"
	case TypeDateTime:
		return "DateTime"
	case TypeDateTimeOffset:
		return "DateTimeOffset"
	default:
		return "Unknown"
	}
}

// IsInteger reports whether the type is a 32- or 64-bit integer.
// The identity field must satisfy this.
func (t FieldType) IsInteger() bool {
	return t == TypeInt32 || t == TypeInt64
}

// typeNames maps the external semantic type names accepted in schema input
// to their FieldType.
var typeNames = map[string]FieldType{
	"System.String":         TypeString,
	"System.Int64":          TypeInt64,
	"System.Int32":          TypeInt32,
	"System.Double":         TypeFloat64,
	"System.Decimal":        TypeFloat64,
	"System.Boolean":        TypeBool,
	"System.DateTime":       TypeDateTime,
	"System.DateTimeOffset": TypeDateTimeOffset,
}

// ResolveFieldType resolves an external semantic type name.
// The second result is false when the name is not recognized.
func ResolveFieldType(name string) (FieldType, bool) {
	t, ok := typeNames[name]
	return t, ok
}

// choiceControls lists the control kinds that require a non-empty Options set.
// Matched case-insensitively.
var choiceControls = map[string]bool{
	"combobox": true,
	"choice":   true,
	"select":   true,
	"dropdown": true,
}

// SchemaField describes a single declared field of a record shape.
// Constructed once from external declarative input; immutable thereafter.
// ControlType, Placeholder, ControlParameters, and DataSetControls are opaque
// UI/aggregation metadata; the core only validates their presence.
type SchemaField struct {
	Name              string         `json:"Name"`
	TypeName          string         `json:"TypeName"`
	ControlType       string         `json:"ControlType"`
	Placeholder       string         `json:"Placeholder"`
	IsRequired        bool           `json:"IsRequired"`
	IsDisplayField    bool           `json:"IsDisplayField"`
	Options           []string       `json:"Options"`
	ControlParameters map[string]any `json:"ControlParameters"`
	DataSetControls   map[string]any `json:"DataSetControls"`
}

// IsChoice reports whether the field's control kind denotes a choice control.
func (f SchemaField) IsChoice() bool {
	return choiceControls[strings.ToLower(f.ControlType)]
}

// IsReadOnly reports whether ControlParameters marks the field read-only.
func (f SchemaField) IsReadOnly() bool {
	v, ok := f.ControlParameters["isReadOnly"]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
