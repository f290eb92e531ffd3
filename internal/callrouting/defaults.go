package callrouting

// Defaults holds the values operations fall back to when a list or mode is
// activated. They are injected so tests and deployments can swap fixtures.
type Defaults struct {
	Assignees []string `json:"assignees" yaml:"assignees"`
	Managers  []string `json:"managers" yaml:"managers"`
	ForwardTo string   `json:"forward_to" yaml:"forward_to"`

	// SequentialNumbers is the pool AddSequentialCallNumber draws from, in order.
	SequentialNumbers []string `json:"sequential_numbers" yaml:"sequential_numbers"`
}

// DemoDefaults returns the demo people and numbers shipped with the studio.
func DemoDefaults() Defaults {
	return Defaults{
		Assignees: []string{"Manuk", "Tejinder"},
		Managers:  []string{"Manuk", "Tejinder", "Saxon"},
		ForwardTo: "+918851641823",
		SequentialNumbers: []string{
			"+918851641813",
			"+918851641853",
			"+918851641822",
		},
	}
}

// sequentialCapacity is bounded by both the pool and MaxSequentialNumbers.
func (d Defaults) sequentialCapacity() int {
	if len(d.SequentialNumbers) < MaxSequentialNumbers {
		return len(d.SequentialNumbers)
	}
	return MaxSequentialNumbers
}

func (d Defaults) clone() Defaults {
	return Defaults{
		Assignees:         cloneStrings(d.Assignees),
		Managers:          cloneStrings(d.Managers),
		ForwardTo:         d.ForwardTo,
		SequentialNumbers: cloneStrings(d.SequentialNumbers),
	}
}
