package domain

// EventExport is the top-level shape of a calendar export: {"entries": [...]}.
type EventExport struct {
	Entries []EventEntry `json:"entries"`
}

// EventEntry is one exported event with its tags.
type EventEntry struct {
	Tags  []Tag     `json:"tags"`
	Event *EventRef `json:"event"`
}

// EventRef is the nested event object. Only the api_id is read.
type EventRef struct {
	APIID string `json:"api_id"`
}

// UnmarshalJSON keeps api_id only when it is a JSON string. Any other value
// leaves APIID empty, so a tagged entry takes the missing api_id path.
func (r *EventRef) UnmarshalJSON(data []byte) error {
	r.APIID = stringField(data, "api_id")
	return nil
}

// HasTag reports whether the entry carries a tag with exactly this name (case-sensitive).
func (e EventEntry) HasTag(name string) bool {
	for _, t := range e.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// TagNames returns the names of the entry's tags in order.
func (e EventEntry) TagNames() []string {
	names := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		names = append(names, t.Name)
	}
	return names
}

// APIID returns the nested event api_id, or "" when the event or the field is absent.
func (e EventEntry) APIID() string {
	if e.Event == nil {
		return ""
	}
	return e.Event.APIID
}

// EventExportReader loads an event export from a local file.
type EventExportReader interface {
	Read(path string) (*EventExport, error)
}

// APIIDListReader loads event identifiers, one per line.
type APIIDListReader interface {
	Read(path string) ([]string, error)
}

// APIIDListWriter persists event identifiers, one per line.
type APIIDListWriter interface {
	Write(path string, ids []string) error
}

// FilterStats summarizes a tag filter run.
type FilterStats struct {
	Total        int
	Matched      int
	MissingAPIID int
	Collected    int
}
