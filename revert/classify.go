package revert

import (
	"strings"

	"sirherobrine23.com.br/go-bds/mountrevert/mounts"
	"sirherobrine23.com.br/go-bds/mountrevert/overlayfs"
)

// Mount points to detach in discovery order, duplicates allowed.
//
// Detach order is the reverse, later mounts may be stacked over earlier ones.
type TargetList []string

func (list *TargetList) Push(target string) { *list = append(*list, target) }

// Targets in detach order
func (list TargetList) Reversed() []string {
	out := make([]string, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, list[i])
	}
	return out
}

// Mounts selected to hide and overlays to watch
type Plan struct {
	LoopSource string              `json:"loop_source" yaml:"loop_source"` // Source of module directory, empty if not mounted
	Targets    TargetList          `json:"targets" yaml:"targets"`
	Backups    overlayfs.BackupSet `json:"backups" yaml:"backups"`
}

// Take two snapshots and classify without touching namespace
func (rev *Reverter) Plan() (Plan, error) {
	first, err := rev.Source.Snapshot()
	if err != nil {
		return Plan{}, err
	}
	second, err := rev.Source.Snapshot()
	if err != nil {
		return Plan{}, err
	}
	return rev.Classify(first, second), nil
}

// Select mounts to hide from first table and mounts sharing module
// directory source from second.
//
// Module directory is always first target. Overlays with module directory
// in options are hidden, other overlays go to backups.
func (rev *Reverter) Classify(first, second mounts.Table) Plan {
	plan := Plan{Targets: TargetList{rev.ModuleDir}, Backups: overlayfs.BackupSet{}}
	for _, rec := range first {
		if rec.Path == rev.ModuleDir {
			plan.LoopSource = rec.Source
			continue
		}

		if strings.HasPrefix(rec.Path, rev.HidePrefix) {
			plan.Targets.Push(rec.Path)
		}

		if rec.Type == overlayfs.FSType {
			if strings.Contains(rec.Options, rev.ModuleDir) {
				plan.Targets.Push(rec.Path)
			} else {
				plan.Backups.Add(rec)
			}
		}
	}

	// Bind mounts from module image
	if plan.LoopSource != "" {
		for _, rec := range second {
			if rec.Source == plan.LoopSource && rec.Path != rev.ModuleDir {
				plan.Targets.Push(rec.Path)
			}
		}
	}

	rev.logger().WithField("targets", len(plan.Targets)).WithField("backups", len(plan.Backups)).Debug("Mounts classified")
	rev.Metrics.SetTargets(len(plan.Targets))
	return plan
}
