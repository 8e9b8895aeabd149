package recordmap

import "github.com/tinywasm/fmt"

// Action represents the kind of statement parameters are mapped for.
type Action int

const (
	ActionSelect Action = iota
	ActionInsert
	ActionUpdate
	ActionDelete
)

// columnSQL maps a semantic type to its storage column type.
func columnSQL(t FieldType) string {
	switch t {
	case TypeInt32, TypeInt64:
		return "INTEGER"
	case TypeString:
		return "TEXT"
	case TypeDateTime, TypeDateTimeOffset:
		return "DATE"
	case TypeBool:
		return "BOOLEAN"
	case TypeFloat64:
		return "NUMERIC"
	default:
		return "TEXT"
	}
}

// SQLGenerator produces parameterized statement text for one runtime type
// and storage-object name. Both must be set before any generate call.
// Parameter binding is name-addressed (@Field), so statement text and the
// MapParameters() result stay consistent as long as both read the same
// descriptor.
type SQLGenerator struct {
	desc  *TypeDescriptor
	table string
}

// NewSQLGenerator creates an unconfigured generator.
func NewSQLGenerator() *SQLGenerator {
	return &SQLGenerator{}
}

// SetDescriptor sets the runtime type statements are generated for.
func (g *SQLGenerator) SetDescriptor(desc *TypeDescriptor) {
	g.desc = desc
}

// SetTableName sets the storage-object name.
func (g *SQLGenerator) SetTableName(name string) {
	g.table = name
}

func (g *SQLGenerator) ready() error {
	if g.desc == nil {
		return errNotConfigured("sql generator has no descriptor")
	}
	if g.table == "" {
		return errNotConfigured("sql generator has no table name")
	}
	return nil
}

// CreateTableQuery emits a CREATE-IF-NOT-EXISTS statement with Id as an
// auto-incrementing primary key.
func (g *SQLGenerator) CreateTableQuery() (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	buf := fmt.Convert("CREATE TABLE IF NOT EXISTS ")
	buf.Write(g.table)
	buf.Write(" (")
	for i, f := range g.desc.Fields() {
		if i > 0 {
			buf.Write(", ")
		}
		if f.Name == IDField {
			buf.Write("Id INTEGER PRIMARY KEY AUTOINCREMENT")
			continue
		}
		buf.Write(f.Name)
		buf.Write(" ")
		buf.Write(columnSQL(f.Type))
	}
	buf.Write(")")
	return buf.String(), nil
}

// SelectQuery emits the full-table select.
func (g *SQLGenerator) SelectQuery() (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	return "SELECT * FROM " + g.table, nil
}

// InsertQuery emits an insert over all fields except Id, which is
// storage-assigned.
func (g *SQLGenerator) InsertQuery() (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	cols := fmt.Convert()
	params := fmt.Convert()
	first := true
	for _, f := range g.desc.Fields() {
		if f.Name == IDField {
			continue
		}
		if !first {
			cols.Write(", ")
			params.Write(", ")
		}
		first = false
		cols.Write(f.Name)
		params.Write("@" + f.Name)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", g.table, cols.String(), params.String()), nil
}

// UpdateQuery emits an update of all fields except Id, keyed by Id.
func (g *SQLGenerator) UpdateQuery() (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	set := fmt.Convert()
	first := true
	for _, f := range g.desc.Fields() {
		if f.Name == IDField {
			continue
		}
		if !first {
			set.Write(", ")
		}
		first = false
		set.Write(f.Name)
		set.Write(" = @")
		set.Write(f.Name)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE Id = @Id", g.table, set.String()), nil
}

// DeleteQuery emits a delete keyed by Id.
func (g *SQLGenerator) DeleteQuery() (string, error) {
	if err := g.ready(); err != nil {
		return "", err
	}
	return fmt.Sprintf("DELETE FROM %s WHERE Id = @Id", g.table), nil
}

// MapParameters produces the @-named parameter map a statement needs from a
// row's current values. Insert uses all non-Id fields; update adds @Id;
// delete needs only @Id. Values pass through unmodified; nil stays nil,
// the engine's null sentinel.
func (g *SQLGenerator) MapParameters(row *Row, action Action) (map[string]any, error) {
	if err := g.ready(); err != nil {
		return nil, err
	}

	params := make(map[string]any)
	switch action {
	case ActionInsert:
		for _, f := range g.desc.Fields() {
			if f.Name == IDField {
				continue
			}
			params["@"+f.Name] = row.Get(f.Name)
		}
	case ActionUpdate:
		for _, f := range g.desc.Fields() {
			if f.Name == IDField {
				continue
			}
			params["@"+f.Name] = row.Get(f.Name)
		}
		params["@Id"] = row.Get(IDField)
	case ActionDelete:
		params["@Id"] = row.Get(IDField)
	default:
		return nil, errMalformedInput("no parameter map for this action")
	}
	return params, nil
}
