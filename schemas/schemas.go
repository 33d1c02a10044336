// Package schemas embeds the JSON Schema documents shipped with the site.
package schemas

import _ "embed"

// Content is the JSON Schema every content document must satisfy.
//
//go:embed content.schema.json
var Content []byte

// ContentName identifies the content schema in error messages.
const ContentName = "content.schema.json"
