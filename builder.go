package recordmap

import "strings"

// BuildDescriptor validates an ordered field list as a set and produces the
// runtime type descriptor for it. It is idempotent and side-effect free;
// all rules are checked over the entire list before failing, so one call
// reports every violation at once.
func BuildDescriptor(schemaFields []SchemaField) (*TypeDescriptor, error) {
	var problems []string

	idFound := false
	wrongCase := ""
	seen := make(map[string]int, len(schemaFields))

	for _, f := range schemaFields {
		if f.Name == "" {
			problems = append(problems, "field with empty name")
			continue
		}
		if _, dup := seen[f.Name]; dup {
			problems = append(problems, "duplicate field name "+f.Name)
		}
		seen[f.Name]++

		if f.Name == IDField {
			idFound = true
		} else if strings.EqualFold(f.Name, IDField) {
			wrongCase = f.Name
		}

		t, ok := ResolveFieldType(f.TypeName)
		if !ok {
			problems = append(problems, "field "+f.Name+": unresolvable type name "+f.TypeName)
			continue
		}

		if f.ControlType == "" {
			problems = append(problems, "field "+f.Name+": missing control kind")
		}
		if f.IsRequired && f.Name != IDField && f.IsReadOnly() {
			problems = append(problems, "field "+f.Name+": required field cannot be read-only")
		}
		if f.IsChoice() && len(f.Options) == 0 {
			problems = append(problems, "field "+f.Name+": choice control requires non-empty options")
		}

		if f.Name == IDField && !t.IsInteger() {
			problems = append(problems, "Id field must be a 32- or 64-bit integer, got "+t.String())
		}
	}

	if !idFound {
		if wrongCase != "" {
			problems = append(problems, "identity field has wrong case: "+wrongCase+" (must be exactly Id)")
		} else {
			problems = append(problems, "missing identity field Id")
		}
	}

	if len(problems) > 0 {
		return nil, errSchemaValidation(problems)
	}

	fields := make([]DescriptorField, 0, len(schemaFields))
	index := make(map[string]int, len(schemaFields))
	for _, f := range schemaFields {
		t, _ := ResolveFieldType(f.TypeName)
		index[f.Name] = len(fields)
		fields = append(fields, DescriptorField{Name: f.Name, Type: t, Meta: f})
	}

	return &TypeDescriptor{fields: fields, index: index}, nil
}
