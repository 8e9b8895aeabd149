package recordmap

import (
	json "github.com/goccy/go-json"
)

// ParseSchema decodes an ordered JSON array of field definitions.
// The array order is preserved; it becomes the field order of the
// descriptor built from it.
func ParseSchema(data []byte) ([]SchemaField, error) {
	var fields []SchemaField
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errMalformedInput(err.Error())
	}
	if fields == nil {
		return nil, errMalformedInput("expected a JSON array of field definitions")
	}
	return fields, nil
}
