package domain

// Attendee is one deduplicated, redacted guest as written to the output file.
type Attendee struct {
	Name      *string `json:"name"`
	Email     string  `json:"email"`
	EmailHash string  `json:"email_hash,omitempty"`
}

// AddResult reports what UniqueGuests.Add did with a guest.
type AddResult int

const (
	Added AddResult = iota
	Duplicate
)

// UniqueGuests maps raw email to attendee. The first guest seen for an email
// wins; later ones are discarded without merging names.
type UniqueGuests struct {
	byEmail map[string]int
	list    []Attendee
}

// NewUniqueGuests returns an empty map.
func NewUniqueGuests() *UniqueGuests {
	return &UniqueGuests{byEmail: make(map[string]int)}
}

// Add stores a under the raw email unless that email is already present.
func (u *UniqueGuests) Add(email string, a Attendee) AddResult {
	if _, ok := u.byEmail[email]; ok {
		return Duplicate
	}
	u.byEmail[email] = len(u.list)
	u.list = append(u.list, a)
	return Added
}

// Get returns the attendee stored for a raw email.
func (u *UniqueGuests) Get(email string) (Attendee, bool) {
	i, ok := u.byEmail[email]
	if !ok {
		return Attendee{}, false
	}
	return u.list[i], true
}

// Len returns the number of unique emails.
func (u *UniqueGuests) Len() int {
	return len(u.list)
}

// Attendees returns the stored attendees in first-seen order. Never nil.
func (u *UniqueGuests) Attendees() []Attendee {
	out := make([]Attendee, len(u.list))
	copy(out, u.list)
	return out
}

// AttendeeWriter persists the final attendee list and returns the absolute path written.
type AttendeeWriter interface {
	Write(path string, attendees []Attendee) (string, error)
}

// AggregateStats summarizes a guest aggregation run.
type AggregateStats struct {
	IDs          int
	FailedIDs    int
	Fetched      int
	MissingEmail int
	Duplicates   int
	Unique       int
}

// StatsRecorder exports run counters (Prometheus textfile or a test double).
type StatsRecorder interface {
	RecordFilter(stats FilterStats) error
	RecordAggregate(stats AggregateStats) error
}
