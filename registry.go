package reveal

import "slices"

// Registry tracks the active coordinators of one Scene: which coordinator
// watches each trigger region and which coordinators answer each section
// key. Each Scene owns its own Registry; there is no process-wide state.
type Registry struct {
	active   []*Coordinator
	watches  map[*Node]*Coordinator
	sections map[string][]*Coordinator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		watches:  make(map[*Node]*Coordinator),
		sections: make(map[string][]*Coordinator),
	}
}

// Owner returns the coordinator watching region, or nil.
func (r *Registry) Owner(region *Node) *Coordinator {
	return r.watches[region]
}

// Section returns the coordinators registered under id. The returned slice
// MUST NOT be mutated.
func (r *Registry) Section(id string) []*Coordinator {
	return r.sections[id]
}

// Sections returns the registered section keys in activation order.
func (r *Registry) Sections() []string {
	var out []string
	for _, c := range r.active {
		if id := c.cfg.Section; id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// TargetsFor returns every live target belonging to section id.
func (r *Registry) TargetsFor(id string) []*Target {
	var out []*Target
	for _, c := range r.sections[id] {
		if c.driver != nil {
			out = append(out, c.driver.Targets()...)
		}
	}
	return out
}

// Len returns the number of active coordinators.
func (r *Registry) Len() int {
	return len(r.active)
}

// snapshot copies the active list so coordinators may dispose themselves
// (or each other) while the scene iterates.
func (r *Registry) snapshot(buf []*Coordinator) []*Coordinator {
	return append(buf[:0], r.active...)
}

func (r *Registry) add(c *Coordinator) {
	r.active = append(r.active, c)
	r.watches[c.region] = c
	if id := c.cfg.Section; id != "" {
		r.sections[id] = append(r.sections[id], c)
	}
}

func (r *Registry) remove(c *Coordinator) {
	if i := slices.Index(r.active, c); i >= 0 {
		r.active = slices.Delete(r.active, i, i+1)
	}
	if r.watches[c.region] == c {
		delete(r.watches, c.region)
	}
	if id := c.cfg.Section; id != "" {
		list := r.sections[id]
		if i := slices.Index(list, c); i >= 0 {
			list = slices.Delete(list, i, i+1)
		}
		if len(list) == 0 {
			delete(r.sections, id)
		} else {
			r.sections[id] = list
		}
	}
}
