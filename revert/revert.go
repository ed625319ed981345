// Hide root manager mounts from the current mount namespace
//
// Run take two snapshots to select mounts to hide, detach them in reverse
// discovery order, then take a new snapshot and mount again any overlay
// lost as side effect of the detach.
//
// Every failure is logged and the run continue with next mount point,
// nothing is retried or rolled back.
package revert

import (
	"github.com/sirupsen/logrus"
	"sirherobrine23.com.br/go-bds/mountrevert/metrics"
	"sirherobrine23.com.br/go-bds/mountrevert/mntns"
	"sirherobrine23.com.br/go-bds/mountrevert/mounts"
	"sirherobrine23.com.br/go-bds/mountrevert/overlayfs"
	"sirherobrine23.com.br/go-bds/mountrevert/sysmount"
)

const (
	ModuleDir  = "/data/adb/ksu/modules" // KernelSU modules image mount point
	HidePrefix = "/data/adb"             // Every mount under this prefix is hidden
)

type Reverter struct {
	ModuleDir  string             // Module directory mount point, unmounted last
	HidePrefix string             // Mount points starting with prefix are hidden
	Source     mounts.Source      // Mount table snapshots
	Mounter    sysmount.Mounter   // Detach and mount requests
	Log        logrus.FieldLogger // Optional, logrus standard logger if nil
	Metrics    *metrics.Metrics   // Optional
}

// Reverter with KernelSU default paths
func New(source mounts.Source, mounter sysmount.Mounter) *Reverter {
	return &Reverter{
		ModuleDir:  ModuleDir,
		HidePrefix: HidePrefix,
		Source:     source,
		Mounter:    mounter,
	}
}

func (rev *Reverter) logger() logrus.FieldLogger {
	if rev.Log == nil {
		return logrus.StandardLogger()
	}
	return rev.Log
}

// Take new snapshot, a failed read log error and return empty table
func (rev *Reverter) snapshot(phase string) mounts.Table {
	table, err := rev.Source.Snapshot()
	if err != nil {
		rev.logger().WithError(err).WithField("phase", phase).Error("Read mount table")
		return mounts.Table{}
	}
	return table
}

// Result of Run
type Report struct {
	Plan
	Unmounts []Outcome          // Detach requests in issue order
	Pruned   overlayfs.BackupSet // Overlays found mounted after unmount
	Remounts []Outcome          // Restore requests in issue order
}

// Single detach or mount request
type Outcome struct {
	Target string         `json:"target" yaml:"target"`
	Flags  sysmount.Flags `json:"flags,omitempty" yaml:"flags,omitempty"`
	Data   string         `json:"data,omitempty" yaml:"data,omitempty"`
	Err    error          `json:"-" yaml:"-"`
}

func count(outcomes []Outcome, failed bool) (n int) {
	for _, out := range outcomes {
		if (out.Err != nil) == failed {
			n++
		}
	}
	return
}

// Detach requests kernel accepted
func (report Report) Unmounted() int { return count(report.Unmounts, false) }

// Overlays mounted again
func (report Report) Remounted() int { return count(report.Remounts, false) }

// Failed detach and mount requests
func (report Report) Failures() int {
	return count(report.Unmounts, true) + count(report.Remounts, true)
}

// Hide root manager mounts and restore system overlays
//
// ns prove namespace is private, changes made here must not reach
// other processes.
func (rev *Reverter) Run(ns mntns.Private) Report {
	rev.logger().WithFields(logrus.Fields{
		"module_dir": rev.ModuleDir,
		"unshared":   ns.Unshared(),
	}).Debug("Reverting mounts")

	var report Report
	report.Plan = rev.Classify(rev.snapshot("classify"), rev.snapshot("loop"))
	report.Unmounts = rev.Detach(report.Targets)
	backups := append(overlayfs.BackupSet{}, report.Backups...)
	report.Pruned, report.Remounts = rev.Reconcile(backups)

	rev.logger().WithFields(logrus.Fields{
		"unmounted": report.Unmounted(),
		"remounted": report.Remounted(),
		"failures":  report.Failures(),
	}).Info("Mounts reverted")
	return report
}
