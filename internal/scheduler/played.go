package scheduler

// PlayedSet tracks which signal instances have already fired today.
// Keys follow models.Instance.PlayedKey. The set belongs to a single
// scheduler goroutine and is not safe for concurrent use.
type PlayedSet struct {
	day  string
	keys map[string]struct{}
}

func NewPlayedSet() *PlayedSet {
	return &PlayedSet{keys: make(map[string]struct{})}
}

// Rollover resets the set when the calendar day changes. It reports
// whether a reset happened.
func (p *PlayedSet) Rollover(day string) bool {
	if day == p.day {
		return false
	}
	p.day = day
	p.keys = make(map[string]struct{})
	return true
}

func (p *PlayedSet) Add(key string) {
	p.keys[key] = struct{}{}
}

func (p *PlayedSet) Contains(key string) bool {
	_, ok := p.keys[key]
	return ok
}

func (p *PlayedSet) Len() int {
	return len(p.keys)
}
