package display

// State is the lifecycle state of a module.
type State string

const (
	StateStarted State = "started"
	StateStopped State = "stopped"
	// StateUnstartable marks a record without a factory.
	StateUnstartable State = "unstartable"
)

// ModuleStatus describes one registered module.
type ModuleStatus struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	State    State    `json:"state" yaml:"state" toml:"state"`
	Requires []string `json:"requires,omitempty" yaml:"requires,omitempty" toml:"requires,omitempty"`
}

// StatusReport lists every registered module.
type StatusReport struct {
	Modules []ModuleStatus `json:"modules" yaml:"modules" toml:"modules"`
}

// Count returns how many modules are in state.
func (r StatusReport) Count(state State) int {
	n := 0
	for _, m := range r.Modules {
		if m.State == state {
			n++
		}
	}
	return n
}

// PlanReport is the instantiation order for a set of targets.
type PlanReport struct {
	Targets []string `json:"targets" yaml:"targets" toml:"targets"`
	Order   []string `json:"order" yaml:"order" toml:"order"`
}

// CheckResult is the outcome of planning one module.
type CheckResult struct {
	Module string   `json:"module" yaml:"module" toml:"module"`
	OK     bool     `json:"ok" yaml:"ok" toml:"ok"`
	Plan   []string `json:"plan,omitempty" yaml:"plan,omitempty" toml:"plan,omitempty"`
	Code   string   `json:"code,omitempty" yaml:"code,omitempty" toml:"code,omitempty"`
	Error  string   `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// CheckReport holds one result per registered module.
type CheckReport struct {
	Results []CheckResult `json:"results" yaml:"results" toml:"results"`
	Failed  int           `json:"failed" yaml:"failed" toml:"failed"`
}

// OK reports whether every module planned cleanly.
func (r CheckReport) OK() bool {
	return r.Failed == 0
}
