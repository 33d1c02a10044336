package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/jonathan/portfolio-site/internal/schemas"
	"github.com/jonathan/portfolio-site/internal/types"
	"gopkg.in/yaml.v3"
)

// documentWire holds the top level with sections left raw so a payload
// error can be attributed to its section.
type documentWire struct {
	Languages       []types.Locale             `json:"languages"`
	DefaultLanguage types.Locale               `json:"defaultLanguage"`
	Globals         types.Globals              `json:"globals"`
	Pages           []types.Page               `json:"pages"`
	Sections        map[string]json.RawMessage `json:"sections"`
}

// Parse decodes a raw document and returns it in canonical JSON form along
// with the typed document. name is used in error messages only.
func Parse(name string, data []byte, format Format) (*types.Document, []byte, error) {
	raw := data
	if format == FormatYAML {
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, nil, &LoadError{Source: name, Message: "invalid YAML", Cause: err}
		}
		raw = converted
	}

	if err := schemas.ValidateContent(raw); err != nil {
		return nil, nil, &LoadError{Source: name, Message: "document does not match the content schema", Cause: err}
	}

	var wire documentWire
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&wire); err != nil {
		return nil, nil, &LoadError{Source: name, Message: "failed to decode document", Cause: err}
	}

	doc := &types.Document{
		Languages:       wire.Languages,
		DefaultLanguage: wire.DefaultLanguage,
		Globals:         wire.Globals,
		Pages:           wire.Pages,
		Sections:        make(map[string]types.Section, len(wire.Sections)),
	}

	ids := make([]string, 0, len(wire.Sections))
	for id := range wire.Sections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		var section types.Section
		if err := json.Unmarshal(wire.Sections[id], &section); err != nil {
			msg := fmt.Sprintf("section %q is malformed", id)
			var verr *types.VariablesError
			if errors.As(err, &verr) {
				msg = fmt.Sprintf("section %q component %q has invalid variables", id, verr.ComponentID)
			}
			return nil, nil, &LoadError{Source: name, Message: msg, Cause: err}
		}
		doc.Sections[id] = section
	}

	if err := checkDocument(doc); err != nil {
		return nil, nil, &LoadError{Source: name, Message: "document is inconsistent", Cause: err}
	}
	return doc, raw, nil
}

// checkDocument enforces the cross-field rules the schema cannot express.
func checkDocument(doc *types.Document) error {
	if !doc.SupportsLanguage(doc.DefaultLanguage) {
		return fmt.Errorf("defaultLanguage %q is not listed in languages", doc.DefaultLanguage)
	}
	seen := make(map[string]bool, len(doc.Pages))
	for _, p := range doc.Pages {
		if seen[p.ID] {
			return fmt.Errorf("duplicate page id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	normalized, err := normalizeYAML(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}

// normalizeYAML converts the generic maps produced by yaml.v3 into
// string-keyed maps encoding/json can marshal.
func normalizeYAML(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, val := range t {
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			t[k] = n
		}
		return t, nil
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key %v", k)
			}
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			out[key] = n
		}
		return out, nil
	case []interface{}:
		for i, val := range t {
			n, err := normalizeYAML(val)
			if err != nil {
				return nil, err
			}
			t[i] = n
		}
		return t, nil
	default:
		return v, nil
	}
}
