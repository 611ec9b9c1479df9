package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeSettingValue turns a setting value into its stored text form.
//
// Strings are stored verbatim, not JSON-quoted. Everything else is stored as
// JSON text. json.RawMessage values (as decoded from an HTTP body) follow the
// same rule: a JSON string literal is unquoted, any other literal is kept as
// compact JSON.
func EncodeSettingValue(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.RawMessage:
		return encodeRaw(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return "", fmt.Errorf("encode setting value: %w", err)
		}
		return string(b), nil
	}
}

func encodeRaw(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf("encode setting value: empty JSON")
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("encode setting value: %w", err)
		}
		return s, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", fmt.Errorf("encode setting value: %w", err)
	}
	return buf.String(), nil
}

// DecodeSettingValue reverses EncodeSettingValue as far as it can: text that
// parses as JSON yields the parsed value, anything else the raw string.
//
// This is lossy on purpose. A string saved as "42" reads back as the number
// 42 and "true" as the boolean true.
func DecodeSettingValue(stored string) any {
	var v any
	if err := json.Unmarshal([]byte(stored), &v); err != nil {
		return stored
	}
	return v
}

// DecodeSettings decodes every stored value of a raw settings map.
func DecodeSettings(raw map[string]string) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = DecodeSettingValue(v)
	}
	return out
}
