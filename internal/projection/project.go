// Package projection derives the optional companion schema for a record.
package projection

import "github.com/goliatone/go-optionalize/pkg/schema"

// Project returns the optional projection of record: the name gains the
// derived suffix and every field whose type is not already optional is
// wrapped exactly once. Field names, order, and tags are preserved. The
// operation is total; applying it to an already projected record changes
// only the name.
func Project(record schema.Record) schema.Record {
	var fields []schema.Field
	for _, field := range record.Fields {
		fields = append(fields, schema.Field{
			Name: field.Name,
			Type: field.Type.Wrap(),
			Tag:  field.Tag,
		})
	}
	return schema.Record{
		Name:   record.Name + schema.DerivedSuffix,
		Fields: fields,
	}
}

// ProjectAll projects each record in order.
func ProjectAll(records []schema.Record) []schema.Record {
	if len(records) == 0 {
		return nil
	}
	out := make([]schema.Record, 0, len(records))
	for _, record := range records {
		out = append(out, Project(record))
	}
	return out
}
