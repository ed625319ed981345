package revert

// Lazy unmount every target, last pushed first.
//
// A failed detach, like a target already gone with a duplicate entry
// or its parent, is logged and the loop continue.
func (rev *Reverter) Detach(targets TargetList) []Outcome {
	outcomes := make([]Outcome, 0, len(targets))
	for _, target := range targets.Reversed() {
		err := rev.Mounter.Detach(target)
		if err != nil {
			rev.logger().WithError(err).WithField("target", target).Error("Unmount")
		} else {
			rev.logger().WithField("target", target).Debug("Unmounted")
		}
		rev.Metrics.ObserveUnmount(err)
		outcomes = append(outcomes, Outcome{Target: target, Err: err})
	}
	return outcomes
}
