package content

import (
	"math"
	"time"
)

// Stat is one animated figure in the about section.
type Stat struct {
	Icon  string
	Value int
	Label string
}

var stats = []Stat{
	{"calendar", 150, "Years of History"},
	{"users", 50, "Family Members"},
	{"layers", 5, "Generations"},
}

// Stats returns the about-section figures.
func Stats() []Stat {
	return append([]Stat(nil), stats...)
}

// Counter animation timing.
const (
	CounterDuration = 2 * time.Second
	CounterSteps    = 60
)

// CounterPlan describes how a stat counts up from zero once it first comes
// into view.
type CounterPlan struct {
	Value    int
	Duration time.Duration
	Steps    int
}

// NewCounterPlan returns the default plan for value.
func NewCounterPlan(value int) CounterPlan {
	return CounterPlan{Value: value, Duration: CounterDuration, Steps: CounterSteps}
}

// Step returns the interval between ticks.
func (p CounterPlan) Step() time.Duration {
	if p.Steps <= 0 {
		return p.Duration
	}
	return p.Duration / time.Duration(p.Steps)
}

// Increment returns the amount added per tick.
func (p CounterPlan) Increment() float64 {
	if p.Steps <= 0 {
		return float64(p.Value)
	}
	return float64(p.Value) / float64(p.Steps)
}

// Frames returns the displayed count after each tick. Tick i shows
// floor(Value*i/Steps); the last tick shows exactly Value.
func (p CounterPlan) Frames() []int {
	if p.Steps <= 0 {
		return []int{p.Value}
	}
	out := make([]int, p.Steps)
	for i := 1; i <= p.Steps; i++ {
		out[i-1] = p.at(i)
	}
	return out
}

// At returns the displayed count after elapsed time. Before the first tick
// it shows zero.
func (p CounterPlan) At(elapsed time.Duration) int {
	step := p.Step()
	if step <= 0 || p.Steps <= 0 {
		return p.Value
	}
	i := int(elapsed / step)
	if i >= p.Steps {
		return p.Value
	}
	return p.at(i)
}

func (p CounterPlan) at(i int) int {
	if i >= p.Steps {
		return p.Value
	}
	return int(math.Floor(float64(p.Value) * float64(i) / float64(p.Steps)))
}
