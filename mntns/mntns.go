// Private mount namespace precondition
//
// Reconciling changes the mount table of the whole namespace, so callers
// must hold a Private value proving the namespace is not shared with
// other processes: Assume when the process was already unshared by who
// started it, Unshare to create one now.
package mntns

import "errors"

var (
	ErrNotAvaible error = errors.New("mount namespaces not avaible") // Current platform not have mount namespaces
)

// Proof calling thread run in private mount namespace
type Private struct {
	unshared bool
}

// Caller assert namespace is already private
func Assume() Private { return Private{} }

// Namespace created by Unshare
func (ns Private) Unshared() bool { return ns.unshared }
