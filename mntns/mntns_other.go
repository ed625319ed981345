//go:build !linux

package mntns

// Current platform not have mount namespaces, returning ErrNotAvaible
func Unshare() (Private, error) { return Private{}, ErrNotAvaible }
