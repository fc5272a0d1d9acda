package domain

// RingStat is one activity ring's aggregate for a single day.
//
// For the habits ring, Completed/Total count habits (the figure shown to
// users) while Percentage is unit-weighted over min(count,target)/target so
// large-target habits are not diluted by small ones.
type RingStat struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Closed reports whether the ring counts as closed for the day. A ring with
// nothing scheduled is never closed.
func (r RingStat) Closed() bool {
	return r.Total > 0 && r.Percentage >= 1.0
}

// RingSnapshot is the persisted record of one day's ring state, kept so that
// closure transitions can be detected against the previous computation.
type RingSnapshot struct {
	Date           string   `json:"date"`
	Goals          RingStat `json:"goals"`
	Habits         RingStat `json:"habits"`
	Routines       RingStat `json:"routines"`
	AllRingsClosed bool     `json:"allRingsClosed"`
}

// AllClosed applies the combined-closure rule: rings with total 0 are
// excluded, at least one ring must have data, and every ring with data must
// be closed. An entirely empty day never counts.
func AllClosed(goals, habits, routines RingStat) bool {
	hasData := false
	for _, ring := range []RingStat{goals, habits, routines} {
		if ring.Total == 0 {
			continue
		}
		hasData = true
		if !ring.Closed() {
			return false
		}
	}
	return hasData
}

// RingTransitions flags which rings just closed relative to the previous
// snapshot. Each flag is an edge, not a level: an already-closed ring that
// stays closed reports false.
type RingTransitions struct {
	Goals    bool `json:"goals"`
	Habits   bool `json:"habits"`
	Routines bool `json:"routines"`
	All      bool `json:"all"`
}

func (t RingTransitions) Any() bool {
	return t.Goals || t.Habits || t.Routines || t.All
}

// DetectTransitions compares a freshly computed snapshot against the
// previously stored one (nil when no prior snapshot exists). A ring reports a
// transition only when it is closed now and was not closed before; the
// combined edge triggers off the stored AllRingsClosed flag.
func DetectTransitions(current *RingSnapshot, previous *RingSnapshot) RingTransitions {
	justClosed := func(now RingStat, before func(*RingSnapshot) RingStat) bool {
		if !now.Closed() {
			return false
		}
		return previous == nil || before(previous).Percentage < 1.0
	}

	return RingTransitions{
		Goals:    justClosed(current.Goals, func(s *RingSnapshot) RingStat { return s.Goals }),
		Habits:   justClosed(current.Habits, func(s *RingSnapshot) RingStat { return s.Habits }),
		Routines: justClosed(current.Routines, func(s *RingSnapshot) RingStat { return s.Routines }),
		All:      current.AllRingsClosed && (previous == nil || !previous.AllRingsClosed),
	}
}
