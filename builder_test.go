package recordmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinywasm/recordmap"
)

func field(name, typeName, control string) recordmap.SchemaField {
	return recordmap.SchemaField{Name: name, TypeName: typeName, ControlType: control}
}

func TestBuildDescriptor_Valid(t *testing.T) {
	fields := []recordmap.SchemaField{
		field("Id", "System.Int64", "Hidden"),
		field("Username", "System.String", "TextBox"),
		field("DateOfBirth", "System.DateTime", "DatePicker"),
		field("Active", "System.Boolean", "CheckBox"),
		field("Balance", "System.Decimal", "Number"),
	}

	desc, err := recordmap.BuildDescriptor(fields)
	require.NoError(t, err)
	assert.Equal(t, len(fields), desc.FieldCount())
	assert.Equal(t, []string{"Id", "Username", "DateOfBirth", "Active", "Balance"}, desc.ColumnNames())

	f, ok := desc.Field("DateOfBirth")
	require.True(t, ok)
	assert.Equal(t, recordmap.TypeDateTime, f.Type)
}

func TestBuildDescriptor_Int32Identity(t *testing.T) {
	desc, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
		field("Id", "System.Int32", "Hidden"),
		field("Username", "System.String", "TextBox"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, desc.FieldCount())
}

func TestBuildDescriptor_MissingIdentity(t *testing.T) {
	_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
		field("Username", "System.String", "TextBox"),
	})
	require.ErrorContains(t, err, recordmap.ErrSchemaValidation.Error())
	assert.ErrorContains(t, err, "missing identity field")
}

func TestBuildDescriptor_WrongCaseIdentity(t *testing.T) {
	_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
		field("ID", "System.Int64", "Hidden"),
		field("Username", "System.String", "TextBox"),
	})
	require.ErrorContains(t, err, recordmap.ErrSchemaValidation.Error())
	assert.ErrorContains(t, err, "wrong case")
}

func TestBuildDescriptor_IdentityTypedString(t *testing.T) {
	_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
		field("Id", "System.String", "Hidden"),
	})
	require.ErrorContains(t, err, recordmap.ErrSchemaValidation.Error())
	assert.ErrorContains(t, err, "32- or 64-bit integer")
}

func TestBuildDescriptor_FieldRules(t *testing.T) {
	t.Run("empty name", func(t *testing.T) {
		_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
			field("Id", "System.Int64", "Hidden"),
			field("", "System.String", "TextBox"),
		})
		require.ErrorContains(t, err, "empty name")
	})

	t.Run("unresolvable type", func(t *testing.T) {
		_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
			field("Id", "System.Int64", "Hidden"),
			field("Blob", "System.Byte[]", "TextBox"),
		})
		require.ErrorContains(t, err, "unresolvable type name")
	})

	t.Run("missing control kind", func(t *testing.T) {
		_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
			field("Id", "System.Int64", "Hidden"),
			field("Username", "System.String", ""),
		})
		require.ErrorContains(t, err, "missing control kind")
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
			field("Id", "System.Int64", "Hidden"),
			field("Username", "System.String", "TextBox"),
			field("Username", "System.String", "TextBox"),
		})
		require.ErrorContains(t, err, "duplicate field name")
	})

	t.Run("required read-only field", func(t *testing.T) {
		f := field("Username", "System.String", "TextBox")
		f.IsRequired = true
		f.ControlParameters = map[string]any{"isReadOnly": true}
		_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
			field("Id", "System.Int64", "Hidden"),
			f,
		})
		require.ErrorContains(t, err, "cannot be read-only")
	})

	t.Run("choice control without options", func(t *testing.T) {
		_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
			field("Id", "System.Int64", "Hidden"),
			field("Country", "System.String", "ComboBox"),
		})
		require.ErrorContains(t, err, "non-empty options")
	})

	t.Run("choice control with options", func(t *testing.T) {
		f := field("Country", "System.String", "ComboBox")
		f.Options = []string{"DE", "FR"}
		_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
			field("Id", "System.Int64", "Hidden"),
			f,
		})
		require.NoError(t, err)
	})
}

func TestBuildDescriptor_CollectsAllViolations(t *testing.T) {
	_, err := recordmap.BuildDescriptor([]recordmap.SchemaField{
		field("Username", "System.String", ""),
		field("Country", "System.String", "ComboBox"),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "missing control kind")
	assert.ErrorContains(t, err, "non-empty options")
	assert.ErrorContains(t, err, "missing identity field")
}

func TestBuildDescriptor_Idempotent(t *testing.T) {
	fields := []recordmap.SchemaField{
		field("Id", "System.Int64", "Hidden"),
		field("Username", "System.String", "TextBox"),
	}
	first, err := recordmap.BuildDescriptor(fields)
	require.NoError(t, err)
	second, err := recordmap.BuildDescriptor(fields)
	require.NoError(t, err)
	assert.Equal(t, first.ColumnNames(), second.ColumnNames())
	assert.Equal(t, first.FieldCount(), second.FieldCount())
}
