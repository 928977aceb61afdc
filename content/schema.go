package content

import "github.com/invopop/jsonschema"

// Schema reflects the JSON schema of the source table file
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(new(File))
	schema.Title = "Positional Audio Sources"
	schema.Description = "Validates the point sound table read by the positional audio mixer"
	return schema
}
