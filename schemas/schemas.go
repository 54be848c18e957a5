// Package schemas embeds the JSON Schemas for vendoreval input files.
package schemas

import _ "embed"

// RequestSchemaJSON is the schema for evaluation request YAML files.
//
//go:embed request.schema.json
var RequestSchemaJSON string
