package domain

// Tag is a labeled category attached to an event entry. Its identity is its name.
type Tag struct {
	Name string `json:"name"`
}

// UnmarshalJSON keeps name only when it is a JSON string. Any other value,
// including a non-object tag, decodes to an empty name that never matches.
func (t *Tag) UnmarshalJSON(data []byte) error {
	t.Name = stringField(data, "name")
	return nil
}
