package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Use it where byte-for-byte compatibility with other encoding/json
// producers matters, e.g. indented reports meant for humans.
type JSON struct {
	// Indent, when non-empty, pretty-prints with this indent string.
	Indent string
}

// Marshal encodes the value to JSON.
func (c JSON) Marshal(v any) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns "json", or "json-indent" when Indent is set.
func (c JSON) Name() string {
	if c.Indent != "" {
		return "json-indent"
	}
	return "json"
}

// Default is the codec used for new reports.
var Default Codec = GoJSON{}
