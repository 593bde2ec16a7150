package control

import "sync"

// Scope is the boundary within which grouped-control name resolution
// occurs. Physical inputs that share a logical name inside one scope (a
// radio-button group) resolve to a single shared Control instance.
//
// A Scope is an explicit object: a form owns one, and a standalone scope
// from NewScope serves as the top-level default. It is passed by reference
// through construction, never held in package-level state, so independent
// forms never share group tables.
type Scope struct {
	mu      sync.Mutex
	groups  map[string]*group
	members map[any]*group
}

// group is the bookkeeping entry for one logical control.
type group struct {
	name string
	ctrl Control
	refs int
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		groups:  make(map[string]*group),
		members: make(map[any]*group),
	}
}

// Attach resolves the logical control for the fresh control's name.
//
// If a logical control already exists for that name in this scope, the
// existing instance is returned and fresh is discarded (its disconnect
// fires, since it was never shared). Otherwise fresh becomes the logical
// control. Either way the logical control's reference count is
// incremented and member is bound to this scope for later Detach.
//
// member identifies the physical input; it must be comparable and unique
// per physical input. Attaching the same member twice is a lifecycle bug
// in the calling adapter and panics.
func (s *Scope) Attach(member any, fresh Control) Control {
	if member == nil {
		panic("control: scope attach with nil member")
	}
	if fresh == nil {
		panic("control: scope attach with nil control")
	}

	s.mu.Lock()
	if _, dup := s.members[member]; dup {
		s.mu.Unlock()
		panic("control: physical input attached twice")
	}

	name := fresh.Name()
	g, ok := s.groups[name]
	if !ok {
		g = &group{name: name, ctrl: fresh}
		s.groups[name] = g
	}
	g.refs++
	s.members[member] = g
	s.mu.Unlock()

	if ok && fresh != g.ctrl {
		// The freshly constructed control lost the race for the name and
		// was never observed by anyone; dispose it.
		fresh.Disconnect()
	}

	return g.ctrl
}

// Detach decrements the reference count for the member's logical control.
// When the count reaches zero the logical control is removed from the
// scope and its disconnect signal fires, notifying the form aggregator
// and any other consumer.
//
// Detaching a member that was never attached is a lifecycle bug in the
// calling adapter and panics.
func (s *Scope) Detach(member any) {
	s.mu.Lock()
	g, ok := s.members[member]
	if !ok {
		s.mu.Unlock()
		panic("control: detach of physical input that was never attached")
	}
	delete(s.members, member)
	g.refs--
	last := g.refs == 0
	if last {
		delete(s.groups, g.name)
	}
	s.mu.Unlock()

	if last {
		g.ctrl.Disconnect()
	}
}

// Resolve returns the logical control registered under name, if any.
func (s *Scope) Resolve(name string) (Control, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[name]
	if !ok {
		return nil, false
	}
	return g.ctrl, true
}

// Len returns the number of logical controls currently registered.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups)
}
