package revert

import (
	"github.com/sirupsen/logrus"
	"sirherobrine23.com.br/go-bds/mountrevert/overlayfs"
)

// Take fresh snapshot, drop backups still mounted as before and mount
// again the rest.
//
// Return overlays found intact and one outcome per restore attempt.
func (rev *Reverter) Reconcile(backups overlayfs.BackupSet) (overlayfs.BackupSet, []Outcome) {
	pruned := backups.Prune(rev.snapshot("reconcile").OfType(overlayfs.FSType))
	rev.Metrics.AddPruned(len(pruned))

	outcomes := make([]Outcome, 0, len(backups))
	for _, backup := range backups {
		flags, data, err := backup.Restore(rev.Mounter)
		log := rev.logger().WithFields(logrus.Fields{"target": backup.Target, "flags": flags})
		if err != nil {
			log.WithError(err).WithField("data", data).Error("Remount")
		} else {
			log.Debug("Remounted")
		}
		rev.Metrics.ObserveRemount(err)
		outcomes = append(outcomes, Outcome{Target: backup.Target, Flags: flags, Data: data, Err: err})
	}
	return pruned, outcomes
}
