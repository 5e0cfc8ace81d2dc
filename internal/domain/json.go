package domain

import "encoding/json"

// stringField returns data[key] when data is a JSON object whose key holds a
// string, and "" otherwise.
func stringField(data []byte, key string) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return ""
	}
	raw, ok := obj[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
