package display

import (
	"github.com/arthur-debert/sandbox/pkg/errors"
	"github.com/arthur-debert/sandbox/pkg/sandbox"
)

// CollectStatus describes every module of sb, sorted by name.
func CollectStatus(sb *sandbox.Sandbox) StatusReport {
	report := StatusReport{Modules: []ModuleStatus{}}
	for _, name := range sb.Modules() {
		mod, ok := sb.Module(name)
		if !ok {
			continue
		}
		report.Modules = append(report.Modules, ModuleStatus{
			Name:     name,
			State:    stateOf(mod),
			Requires: requireNames(mod.Requires()),
		})
	}
	return report
}

// CollectPlan plans targets in order. Modules already planned for an earlier
// target are not repeated.
func CollectPlan(sb *sandbox.Sandbox, targets []string) (PlanReport, error) {
	report := PlanReport{Targets: targets, Order: []string{}}
	seen := make(map[string]bool)

	for _, target := range targets {
		order, err := sb.Plan(target)
		if err != nil {
			return report, err
		}
		for _, name := range order {
			if !seen[name] {
				seen[name] = true
				report.Order = append(report.Order, name)
			}
		}
	}
	return report, nil
}

// CollectCheck plans every module of sb without starting anything.
func CollectCheck(sb *sandbox.Sandbox) CheckReport {
	report := CheckReport{Results: []CheckResult{}}
	for _, name := range sb.Modules() {
		result := CheckResult{Module: name}

		plan, err := sb.Plan(name)
		if err != nil {
			result.Code = string(errors.GetErrorCode(err))
			result.Error = err.Error()
			report.Failed++
		} else {
			result.OK = true
			result.Plan = plan
		}
		report.Results = append(report.Results, result)
	}
	return report
}

func stateOf(mod *sandbox.Module) State {
	switch {
	case mod.Started():
		return StateStarted
	case !mod.Startable():
		return StateUnstartable
	default:
		return StateStopped
	}
}

func requireNames(deps []sandbox.Dependency) []string {
	if len(deps) == 0 {
		return nil
	}
	names := make([]string, 0, len(deps))
	for _, dep := range deps {
		names = append(names, dep.String())
	}
	return names
}
