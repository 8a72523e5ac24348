package aggregate

// Sum accumulates a float total.
type Sum struct {
	total float64
}

// Observe adds a value to the running total.
func (s *Sum) Observe(v float64) { s.total += v }

// Merge folds another partial sum into this one.
func (s *Sum) Merge(other Sum) { s.total += other.total }

// Value returns the accumulated total.
func (s Sum) Value() float64 { return s.total }

// IntSum accumulates an integer total.
type IntSum struct {
	total int
}

func (s *IntSum) Observe(v int)      { s.total += v }
func (s *IntSum) Merge(other IntSum) { s.total += other.total }
func (s IntSum) Value() int          { return s.total }

// Count tallies observations.
type Count struct {
	n int
}

func (c *Count) Observe()          { c.n++ }
func (c *Count) Merge(other Count) { c.n += other.n }
func (c Count) Value() int         { return c.n }

// Avg accumulates a running mean. An empty Avg reports 0.
type Avg struct {
	sum float64
	n   int
}

func (a *Avg) Observe(v float64) {
	a.sum += v
	a.n++
}

func (a *Avg) Merge(other Avg) {
	a.sum += other.sum
	a.n += other.n
}

func (a Avg) Value() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

// MinString keeps the smallest observed string. Used for ISO date keys,
// where lexicographic and chronological order coincide.
type MinString struct {
	set bool
	v   string
}

func (m *MinString) Observe(v string) {
	if !m.set || v < m.v {
		m.set = true
		m.v = v
	}
}

func (m MinString) Value() string { return m.v }

// MaxString keeps the largest observed string.
type MaxString struct {
	set bool
	v   string
}

func (m *MaxString) Observe(v string) {
	if !m.set || v > m.v {
		m.set = true
		m.v = v
	}
}

func (m MaxString) Value() string { return m.v }

// First retains the first observed value, carrying denormalized labels
// (customer name, segment) alongside the numeric accumulators.
type First struct {
	set bool
	v   string
}

func (f *First) Observe(v string) {
	if !f.set {
		f.set = true
		f.v = v
	}
}

func (f First) Value() string { return f.v }
