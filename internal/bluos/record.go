package bluos

// Record is the canonical form every endpoint response is normalized
// into: scalar fields keyed by name, plus ordered sequences of child
// Records for repeated elements (songs, presets, playlist entries).
//
// Records are terminal values. The normalizer builds one per response
// and nothing mutates it afterwards, so a Record may be shared across
// goroutines freely.
type Record struct {
	Fields map[string]string
	Lists  map[string][]Record
}

func newRecord() Record {
	return Record{
		Fields: make(map[string]string),
		Lists:  make(map[string][]Record),
	}
}

// Get returns the named scalar field and whether it was present.
func (r Record) Get(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Field returns the named scalar field, or "" when absent.
func (r Record) Field(name string) string {
	return r.Fields[name]
}

// Text returns the human-readable label every listable Record carries.
// The normalizer synthesizes it from the endpoint's alias field when the
// device does not send a text attribute outright.
func (r Record) Text() string {
	return r.Fields["text"]
}

// List returns the child Records under the named tag. A repeatable tag
// always yields a sequence, even when the device sent a single element.
func (r Record) List(name string) []Record {
	return r.Lists[name]
}

// Len reports how many child Records sit under the named tag.
func (r Record) Len(name string) int {
	return len(r.Lists[name])
}
