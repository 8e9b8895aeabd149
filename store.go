package recordmap

import (
	"sort"

	"github.com/tinywasm/fmt"
)

// Rows represents an iterator over an external tabular result with named
// columns. It must remain compatible with sql.Rows, mocks, and WASM drivers.
type Rows interface {
	Columns() []string
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// RecordStore owns the in-memory tabular cache, the identity allocation
// counter, and the identity map. It assumes exclusive ownership by its
// caller: no locking is performed, and callers wanting concurrent access
// must serialize externally. Persistence callbacks run synchronously; a
// callback error propagates unchanged and the cache mutation for that
// operation is left as far along as execution reached.
type RecordStore struct {
	desc   *TypeDescriptor
	table  *Table
	nextID int64
	byID   map[int64]*Row

	fetch    func() (Rows, error)
	onAdd    func(*Row) error
	onUpdate func(*Row) error
	onDelete func(*Row) error

	logFn func(messages ...any)
}

// NewRecordStore creates a store with a fresh identity counter starting at 1.
func NewRecordStore() *RecordStore {
	return &RecordStore{nextID: 1, byID: make(map[int64]*Row)}
}

// SetLog sets the log function for informational messages.
// If not set, messages are silently discarded.
func (s *RecordStore) SetLog(fn func(messages ...any)) {
	s.logFn = fn
}

func (s *RecordStore) log(messages ...any) {
	if s.logFn != nil {
		s.logFn(messages...)
	}
}

// SetFetch sets the callback FetchAll() pulls the external result from.
func (s *RecordStore) SetFetch(fn func() (Rows, error)) {
	s.fetch = fn
}

// SetOnAdd sets the persistence callback invoked after a row is added.
// The callback may overwrite the row's Id with a storage-assigned value;
// the store re-keys the identity map accordingly.
func (s *RecordStore) SetOnAdd(fn func(*Row) error) {
	s.onAdd = fn
}

// SetOnUpdate sets the persistence callback invoked after a row is updated.
func (s *RecordStore) SetOnUpdate(fn func(*Row) error) {
	s.onUpdate = fn
}

// SetOnDelete sets the persistence callback invoked before a row is removed,
// so the collaborator still sees a fully populated row.
func (s *RecordStore) SetOnDelete(fn func(*Row) error) {
	s.onDelete = fn
}

// Descriptor returns the generated runtime type, nil before CreateType().
func (s *RecordStore) Descriptor() *TypeDescriptor {
	return s.desc
}

// CreateType parses declarative field definitions, builds the runtime type
// descriptor, and derives the cache's column set from it. It may be called
// once per store; rebuilding requires a new instance.
func (s *RecordStore) CreateType(schemaJSON []byte) (*TypeDescriptor, error) {
	if s.desc != nil {
		return nil, ErrTypeGenerated
	}
	schemaFields, err := ParseSchema(schemaJSON)
	if err != nil {
		return nil, err
	}
	desc, err := BuildDescriptor(schemaFields)
	if err != nil {
		return nil, err
	}
	s.desc = desc
	s.table = NewTable(desc.ColumnNames())
	s.log("generated type with", desc.FieldCount(), "fields")
	return desc, nil
}

// NewRecord creates an empty record of the store's generated type.
func (s *RecordStore) NewRecord() (*Record, error) {
	if s.desc == nil {
		return nil, errNotConfigured("no type generated")
	}
	return NewRecord(s.desc), nil
}

// FetchAll replaces the cache and identity map with the externally fetched
// result, merged column-for-column. Every resulting row gets the next
// identity written into its Id column and is normalized through a transient
// record of the generated type. Fetch never triggers the persistence
// callbacks. The identity counter is not reset; identifiers are never reused.
func (s *RecordStore) FetchAll() error {
	if s.desc == nil {
		return errNotConfigured("no type generated")
	}
	if s.fetch == nil {
		return errNotConfigured("fetch callback not set")
	}

	src, err := s.fetch()
	if err != nil {
		return err
	}
	defer src.Close()

	s.table.Clear()
	clear(s.byID)

	cols := src.Columns()
	for src.Next() {
		values := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := src.Scan(dest...); err != nil {
			return err
		}

		row := s.table.NewRow()
		for i, c := range cols {
			if c == IDField || !s.table.HasColumn(c) {
				continue
			}
			row.Set(c, values[i])
		}

		id := s.nextID
		s.nextID++
		row.Set(IDField, id)

		rec, err := s.rowToRecord(row)
		if err != nil {
			return err
		}
		if err := s.recordToRow(rec, row); err != nil {
			return err
		}

		s.table.Append(row)
		s.byID[id] = row
	}
	if err := src.Err(); err != nil {
		return err
	}

	s.log("fetched", s.table.RowCount(), "rows")
	return nil
}

// AddDataRow allocates the next identity, writes it into the record, builds
// a new cached row from the record's declared fields, and invokes the OnAdd
// callback with it. When the callback overwrites Id with a storage-assigned
// value, the identity map is re-keyed and the final value written back into
// the record.
func (s *RecordStore) AddDataRow(rec *Record) error {
	if err := s.checkRecord(rec); err != nil {
		return err
	}

	id := s.nextID
	s.nextID++
	rec.SetID(id)

	row := s.table.NewRow()
	row.Set(IDField, id)
	if err := s.recordToRow(rec, row); err != nil {
		return err
	}

	s.table.Append(row)
	s.byID[id] = row

	if s.onAdd != nil {
		if err := s.onAdd(row); err != nil {
			return err
		}
		if assigned := row.ID(); assigned != id {
			delete(s.byID, id)
			s.byID[assigned] = row
			rec.SetID(assigned)
			if assigned >= s.nextID {
				s.nextID = assigned + 1
			}
			id = assigned
		}
	}

	s.log("added row", id)
	return nil
}

// UpdateDataRow resolves the cached row through the record's Id and
// overwrites every declared field with the record's value, then invokes
// the OnUpdate callback.
func (s *RecordStore) UpdateDataRow(rec *Record) error {
	if err := s.checkRecord(rec); err != nil {
		return err
	}
	row, ok := s.byID[rec.ID()]
	if !ok {
		return errRecordNotFound(rec.ID())
	}

	if err := s.recordToRow(rec, row); err != nil {
		return err
	}

	if s.onUpdate != nil {
		if err := s.onUpdate(row); err != nil {
			return err
		}
	}

	s.log("updated row", rec.ID())
	return nil
}

// DeleteDataRow resolves the cached row through the record's Id, invokes
// the OnDelete callback while the row is still fully populated, then
// removes it from cache and identity map.
func (s *RecordStore) DeleteDataRow(rec *Record) error {
	if err := s.checkRecord(rec); err != nil {
		return err
	}
	row, ok := s.byID[rec.ID()]
	if !ok {
		return errRecordNotFound(rec.ID())
	}

	if s.onDelete != nil {
		if err := s.onDelete(row); err != nil {
			return err
		}
	}

	s.table.Remove(row)
	delete(s.byID, rec.ID())

	s.log("deleted row", rec.ID())
	return nil
}

// GetRowByID looks a row up in the identity map. The map, not the row's
// cache position, is the source of truth for identifier existence.
func (s *RecordStore) GetRowByID(id int64) (*Row, error) {
	row, ok := s.byID[id]
	if !ok {
		return nil, errRecordNotFound(id)
	}
	return row, nil
}

// GetTable returns the live cache. Callers must not assume immutability;
// it reflects the store's current state.
func (s *RecordStore) GetTable() *Table {
	return s.table
}

// GetRecordByID materializes a record from the cached row with the given
// identity, applying type coercion.
func (s *RecordStore) GetRecordByID(id int64) (*Record, error) {
	row, err := s.GetRowByID(id)
	if err != nil {
		return nil, err
	}
	return s.rowToRecord(row)
}

// InspectStructure produces a human-readable dump of the generated type:
// field name, semantic type, and stored control metadata per field.
func (s *RecordStore) InspectStructure() string {
	if s.desc == nil {
		return "no type generated"
	}
	buf := fmt.Convert()
	for i, f := range s.desc.Fields() {
		if i > 0 {
			buf.Write("\n")
		}
		buf.Write(f.Name)
		buf.Write(" ")
		buf.Write(f.Type.String())
		if f.Meta.ControlType != "" {
			buf.Write(" control=" + f.Meta.ControlType)
		}
		if f.Meta.IsRequired {
			buf.Write(" required")
		}
		if f.Meta.IsDisplayField {
			buf.Write(" display")
		}
		if len(f.Meta.Options) > 0 {
			buf.Write(" options=[" + fmt.Convert(f.Meta.Options).Join(" ").String() + "]")
		}
		if len(f.Meta.ControlParameters) > 0 {
			keys := make([]string, 0, len(f.Meta.ControlParameters))
			for k := range f.Meta.ControlParameters {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			buf.Write(" params=[" + fmt.Convert(keys).Join(" ").String() + "]")
		}
	}
	return buf.String()
}

func (s *RecordStore) checkRecord(rec *Record) error {
	if s.desc == nil {
		return errNotConfigured("no type generated")
	}
	if rec == nil {
		return errTypeMismatch("nil record")
	}
	if rec.Descriptor() != s.desc {
		return errTypeMismatch("record was built from a different descriptor")
	}
	return nil
}

// rowToRecord materializes a transient record from a cached row,
// applying the Row -> Record coercion policy per field.
func (s *RecordStore) rowToRecord(row *Row) (*Record, error) {
	rec := NewRecord(s.desc)
	for _, f := range s.desc.Fields() {
		v, err := toInstanceValue(f, row.Get(f.Name))
		if err != nil {
			return nil, err
		}
		rec.values[f.Name] = v
	}
	return rec, nil
}

// recordToRow writes every declared non-Id field of a record into a row,
// applying the write-back coercion policy.
func (s *RecordStore) recordToRow(rec *Record, row *Row) error {
	for _, f := range s.desc.Fields() {
		if f.Name == IDField {
			continue
		}
		v, err := toRowValue(f, rec.Get(f.Name))
		if err != nil {
			return err
		}
		row.Set(f.Name, v)
	}
	return nil
}
