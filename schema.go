package dbtype

import (
	"github.com/invopop/jsonschema"
)

// EnumSchema returns the JSON schema of an enum whose JSON form is one of
// labels. Generated JSONSchema methods call it so that the schema lists
// exactly the labels the database boundary uses.
func EnumSchema(title, description string, labels ...string) *jsonschema.Schema {
	enum := make([]any, len(labels))
	for i, l := range labels {
		enum[i] = l
	}
	return &jsonschema.Schema{
		Type:        "string",
		Title:       title,
		Description: description,
		Enum:        enum,
	}
}

// IdentifierSchema returns the JSON schema of a typed identifier. typ and
// format describe the inner value, e.g. "string"/"uuid" or "integer"/"int64".
func IdentifierSchema(title, description, typ, format string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        typ,
		Format:      format,
		Title:       title,
		Description: description,
	}
}
