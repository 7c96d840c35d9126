// Package walk implements the cycle-safe depth-first search over the
// property graph of an arbitrary Go value.
package walk

import "github.com/maxw3st/spotlight/api"

// Predicate decides whether a visited slot is a hit.
type Predicate = api.Predicate

// Walker runs searches against a Host.
type Walker struct {
	host Host
}

// NewWalker returns a Walker over host. A nil host means ReflectHost.
func NewWalker(host Host) *Walker {
	if host == nil {
		host = ReflectHost{}
	}
	return &Walker{host: host}
}

// Host returns the host the walker inspects values with.
func (w *Walker) Host() Host {
	return w.host
}

// Search walks root pre-order and returns every slot pred accepts, in
// discovery order. Each container is entered at most once. The result is
// never nil.
func (w *Walker) Search(root any, label string, pred Predicate) []api.Match {
	s := &search{
		host:    w.host,
		pred:    pred,
		tracker: NewTracker(w.host),
		matches: make([]api.Match, 0),
	}
	s.visit(root, label)
	return s.matches
}

type search struct {
	host    Host
	pred    Predicate
	tracker *Tracker
	matches []api.Match
}

func (s *search) visit(container any, path string) {
	frame, first := s.tracker.Enter(container, path)
	if !first {
		return
	}
	defer s.tracker.Leave(frame)

	proto := s.host.IsPrototype(container)
	for _, p := range s.host.Properties(container) {
		if p.Key == "prototype" || (proto && p.Key == "constructor") {
			continue
		}
		childPath := Join(path, p.Key)
		if s.pred(p.Value, p.Key, container) {
			s.matches = append(s.matches, api.Match{
				Path:    childPath,
				Summary: s.summary(p.Value),
				Key:     p.Key,
				Value:   p.Value,
				Owner:   container,
			})
		}
		if s.host.IsContainer(p.Value) && !s.tracker.Seen(p.Value) {
			s.visit(p.Value, childPath)
		}
	}
}

func (s *search) summary(v any) string {
	if path, ok := s.tracker.Ancestor(v); ok {
		return Circular(path)
	}
	return Tag(s.host.Kind(v))
}
