package recordmap

// Executor represents the database connection abstraction statements are
// bound to. It must remain compatible with sql.DB, sql.Tx, mocks, and
// WASM drivers.
type Executor interface {
	Exec(query string, args ...any) error
	Query(query string, args ...any) (Rows, error)
}

// NamedArg is a name/value pair bound to one @-parameter of a generated
// statement. Executors backed by database/sql can convert it to sql.Named.
type NamedArg struct {
	Name  string
	Value any
}

// Statement is one generated query plus its bound arguments, ready for an
// Executor to run.
type Statement struct {
	Action Action
	Query  string
	Args   []any
}

// SQLBinder bridges a RecordStore's persistence callbacks to an Executor,
// using the statements of a SQLGenerator. Arguments are emitted as NamedArg
// values in descriptor field order, @Id last, so positional executors see a
// deterministic order too.
type SQLBinder struct {
	gen  *SQLGenerator
	exec Executor
}

// NewSQLBinder creates a binder over a configured generator and an executor.
func NewSQLBinder(gen *SQLGenerator, exec Executor) *SQLBinder {
	return &SQLBinder{gen: gen, exec: exec}
}

// Bind installs the binder's fetch and mutation hooks on a store.
func (b *SQLBinder) Bind(s *RecordStore) {
	s.SetFetch(b.Fetch)
	s.SetOnAdd(b.Add)
	s.SetOnUpdate(b.Update)
	s.SetOnDelete(b.Delete)
}

// CreateTable runs the generated CREATE-IF-NOT-EXISTS statement.
func (b *SQLBinder) CreateTable() error {
	query, err := b.gen.CreateTableQuery()
	if err != nil {
		return err
	}
	return b.exec.Exec(query)
}

// Fetch runs the generated select and returns its rows.
func (b *SQLBinder) Fetch() (Rows, error) {
	query, err := b.gen.SelectQuery()
	if err != nil {
		return nil, err
	}
	return b.exec.Query(query)
}

// Add persists a freshly added row.
func (b *SQLBinder) Add(row *Row) error {
	return b.run(ActionInsert, row)
}

// Update persists an updated row.
func (b *SQLBinder) Update(row *Row) error {
	return b.run(ActionUpdate, row)
}

// Delete removes a row from storage.
func (b *SQLBinder) Delete(row *Row) error {
	return b.run(ActionDelete, row)
}

func (b *SQLBinder) run(action Action, row *Row) error {
	st, err := b.plan(action, row)
	if err != nil {
		return err
	}
	return b.exec.Exec(st.Query, st.Args...)
}

// plan pairs the statement text for an action with its bound arguments.
func (b *SQLBinder) plan(action Action, row *Row) (Statement, error) {
	var query string
	var err error
	switch action {
	case ActionInsert:
		query, err = b.gen.InsertQuery()
	case ActionUpdate:
		query, err = b.gen.UpdateQuery()
	case ActionDelete:
		query, err = b.gen.DeleteQuery()
	default:
		return Statement{}, errMalformedInput("no statement for this action")
	}
	if err != nil {
		return Statement{}, err
	}

	params, err := b.gen.MapParameters(row, action)
	if err != nil {
		return Statement{}, err
	}

	args := make([]any, 0, len(params))
	for _, f := range b.gen.desc.Fields() {
		if f.Name == IDField {
			continue
		}
		if v, ok := params["@"+f.Name]; ok {
			args = append(args, NamedArg{Name: f.Name, Value: v})
		}
	}
	if v, ok := params["@Id"]; ok {
		args = append(args, NamedArg{Name: IDField, Value: v})
	}

	return Statement{Action: action, Query: query, Args: args}, nil
}
