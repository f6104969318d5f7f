package logicsim

// An event is a delayed state update to fire at an absolute tick.
type event struct {
	target int64
	fn     func()
	desc   string
}

// scheduler is a queue of delayed callbacks keyed by absolute tick. It does
// no work on its own; the circuit drains it at the start of each delta
// cycle. Events sharing a target tick fire in insertion order; no other
// ordering is guaranteed.
type scheduler struct {
	events []event
}

func (s *scheduler) schedule(target int64, desc string, fn func()) {
	s.events = append(s.events, event{target: target, fn: fn, desc: desc})
}

// consume removes and returns all events targeting the given tick.
// Both the returned and the remaining events keep their insertion order.
func (s *scheduler) consume(tick int64) []event {
	var due []event
	rest := s.events[:0]
	for _, ev := range s.events {
		if ev.target == tick {
			due = append(due, ev)
		} else {
			rest = append(rest, ev)
		}
	}
	s.events = rest
	return due
}

// pending reports whether any event targets the given tick.
func (s *scheduler) pending(tick int64) bool {
	for _, ev := range s.events {
		if ev.target == tick {
			return true
		}
	}
	return false
}

func (s *scheduler) len() int { return len(s.events) }
