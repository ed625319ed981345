//go:build !unix

package exec

import "errors"

var ErrNotAvaible = errors.New("execve not avaible")

// Current platform not have execve, returning ErrNotAvaible
func (opts Options) Replace() error {
	if _, _, _, err := opts.prepare(); err != nil {
		return err
	}
	return ErrNotAvaible
}
