package synthesizer

import (
	"time"
)

// PrefixLayout is the timestamp layout of a migration identifier prefix.
const PrefixLayout = "2006_01_02_150405"

// Namer issues migration timestamp prefixes. Prefixes are strictly
// increasing within a run and always greater than the seeded floor.
type Namer struct {
	now  func() time.Time
	loc  *time.Location
	last time.Time
}

// NewNamer creates a namer reading the given clock. A nil clock uses time.Now.
func NewNamer(now func() time.Time) *Namer {
	if now == nil {
		now = time.Now
	}
	return &Namer{
		now: now,
		loc: time.Local,
	}
}

// Seed raises the floor to the highest prefix among existing identifiers.
// Identifiers without a parseable prefix are ignored.
func (n *Namer) Seed(identifiers ...string) {
	for _, id := range identifiers {
		if len(id) < len(PrefixLayout) {
			continue
		}
		t, err := time.ParseInLocation(PrefixLayout, id[:len(PrefixLayout)], n.loc)
		if err != nil {
			continue
		}
		if t.After(n.last) {
			n.last = t
		}
	}
}

// Next returns the next prefix. When the clock has not moved past the last
// issued prefix the prefix is advanced by one second.
func (n *Namer) Next() string {
	t := n.now().In(n.loc).Truncate(time.Second)
	if !t.After(n.last) {
		t = n.last.Add(time.Second)
	}
	n.last = t
	return t.Format(PrefixLayout)
}
