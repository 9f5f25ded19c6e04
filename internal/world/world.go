// Package world holds the shared simulation state and the scheduler that
// advances it: an ordered pipeline of physics subsystems, each with its own
// substep count.
package world

// Subsystem is the contract both the rigid-body solver and the MD
// integrator satisfy. Step must be re-entrant across world steps but need
// not be safe for concurrent use.
type Subsystem interface {
	Name() string
	Step(w *World, dt float64)
}

// entry pairs a subsystem with its substep count.
type entry struct {
	system   Subsystem
	substeps int
}

// Scheduler holds an ordered sequence of subsystems and runs each one's
// internal substep loop to completion before advancing to the next.
type Scheduler struct {
	entries []entry
}

// Add appends a subsystem with its substep count. A substeps value below 1
// is treated as 1.
func (s *Scheduler) Add(system Subsystem, substeps int) {
	if substeps < 1 {
		substeps = 1
	}
	s.entries = append(s.entries, entry{system: system, substeps: substeps})
}

// Tick executes every scheduled entry in insertion order. For each entry it
// invokes system.Step(world, dt/substeps) exactly substeps times in
// sequence, so a rebuild inside one entry is always visible to the next.
func (s *Scheduler) Tick(w *World, dt float64) {
	for _, e := range s.entries {
		local := dt / float64(e.substeps)
		for i := 0; i < e.substeps; i++ {
			e.system.Step(w, local)
		}
	}
}

// Entries exposes the scheduled subsystems by name, for CLI introspection
// and tests.
func (s *Scheduler) Entries() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.system.Name()
	}
	return names
}
