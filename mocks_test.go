package recordmap_test

import (
	"testing"

	"github.com/tinywasm/recordmap"
)

const userSchema = `[
	{"Name": "Id", "TypeName": "System.Int64", "ControlType": "Hidden"},
	{"Name": "Username", "TypeName": "System.String", "ControlType": "TextBox", "IsRequired": true, "IsDisplayField": true},
	{"Name": "Age", "TypeName": "System.Int64", "ControlType": "Number"}
]`

func newUserStore(t *testing.T) *recordmap.RecordStore {
	t.Helper()
	s := recordmap.NewRecordStore()
	if _, err := s.CreateType([]byte(userSchema)); err != nil {
		t.Fatalf("CreateType failed: %v", err)
	}
	return s
}

func newUserRecord(t *testing.T, s *recordmap.RecordStore, username string, age int64) *recordmap.Record {
	t.Helper()
	rec, err := s.NewRecord()
	if err != nil {
		t.Fatalf("NewRecord failed: %v", err)
	}
	if err := rec.Set("Username", username); err != nil {
		t.Fatalf("Set Username failed: %v", err)
	}
	if err := rec.Set("Age", age); err != nil {
		t.Fatalf("Set Age failed: %v", err)
	}
	return rec
}

// MockRows plays back a fixed tabular result.
type MockRows struct {
	Cols    []string
	Data    [][]any
	pos     int
	Closed  bool
	ScanErr error
	IterErr error
}

func (m *MockRows) Columns() []string { return m.Cols }

func (m *MockRows) Next() bool {
	if m.pos < len(m.Data) {
		m.pos++
		return true
	}
	return false
}

func (m *MockRows) Scan(dest ...any) error {
	if m.ScanErr != nil {
		return m.ScanErr
	}
	row := m.Data[m.pos-1]
	for i := range dest {
		if p, ok := dest[i].(*any); ok {
			*p = row[i]
		}
	}
	return nil
}

func (m *MockRows) Close() error {
	m.Closed = true
	return nil
}

func (m *MockRows) Err() error { return m.IterErr }

// MockExecutor captures execution calls.
type MockExecutor struct {
	ExecutedQueries []string
	ExecutedArgs    [][]any
	ReturnExecErr   error
	ReturnQueryRows recordmap.Rows
	ReturnQueryErr  error
}

func (m *MockExecutor) Exec(query string, args ...any) error {
	m.ExecutedQueries = append(m.ExecutedQueries, query)
	m.ExecutedArgs = append(m.ExecutedArgs, args)
	return m.ReturnExecErr
}

func (m *MockExecutor) Query(query string, args ...any) (recordmap.Rows, error) {
	m.ExecutedQueries = append(m.ExecutedQueries, query)
	m.ExecutedArgs = append(m.ExecutedArgs, args)
	if m.ReturnQueryRows == nil {
		return &MockRows{}, m.ReturnQueryErr
	}
	return m.ReturnQueryRows, m.ReturnQueryErr
}
