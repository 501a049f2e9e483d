package config

import (
	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of a map file. Obstacles are described in their object form;
// the tuple form the editor writes is accepted as well.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&MapConfig{})
}
