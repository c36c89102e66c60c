// Package schemas embeds the JSON Schemas of the documents this module exchanges.
package schemas

import _ "embed"

// CV is the JSON Schema of the serialized CV document.
//
//go:embed cv.schema.json
var CV []byte
