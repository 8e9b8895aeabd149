package recordmap

import "slices"

// IDField is the name of the generated identity field.
// The store assigns it; callers never supply it on add.
const IDField = "Id"

// DescriptorField is one field of a runtime type descriptor.
// Meta carries the originating schema definition for diagnostics only.
type DescriptorField struct {
	Name string
	Type FieldType
	Meta SchemaField
}

// TypeDescriptor is the runtime shape of a record: an ordered field
// name to semantic type mapping. Built once by BuildDescriptor();
// immutable thereafter.
type TypeDescriptor struct {
	fields []DescriptorField
	index  map[string]int
}

// Fields returns the descriptor's fields in declaration order.
// The returned slice is a copy.
func (d *TypeDescriptor) Fields() []DescriptorField {
	return slices.Clone(d.fields)
}

// FieldCount returns the number of declared fields, identity included.
func (d *TypeDescriptor) FieldCount() int {
	return len(d.fields)
}

// Field looks up a field by name.
func (d *TypeDescriptor) Field(name string) (DescriptorField, bool) {
	i, ok := d.index[name]
	if !ok {
		return DescriptorField{}, false
	}
	return d.fields[i], true
}

// ColumnNames returns the storage column names in declaration order.
// Column names are identical to field names.
func (d *TypeDescriptor) ColumnNames() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// Record is a materialized instance of a runtime type: one attribute per
// descriptor field. Records are transient; the store's cache holds Rows.
type Record struct {
	desc   *TypeDescriptor
	values map[string]any
}

// NewRecord creates an empty record of the given type.
func NewRecord(desc *TypeDescriptor) *Record {
	return &Record{
		desc:   desc,
		values: make(map[string]any, desc.FieldCount()),
	}
}

// Descriptor returns the runtime type this record was built from.
func (r *Record) Descriptor() *TypeDescriptor {
	return r.desc
}

// Get returns the attribute value for a declared field, nil when unset.
func (r *Record) Get(field string) any {
	return r.values[field]
}

// Set assigns an attribute value. The field must be declared in the
// record's type.
func (r *Record) Set(field string, value any) error {
	if _, ok := r.desc.Field(field); !ok {
		return errTypeMismatch("no field " + field + " in generated type")
	}
	r.values[field] = value
	return nil
}

// ID returns the record's identity value, 0 when not yet assigned.
func (r *Record) ID() int64 {
	id, _ := intValue(r.values[IDField])
	return id
}

// SetID assigns the record's identity value.
func (r *Record) SetID(id int64) {
	r.values[IDField] = id
}
