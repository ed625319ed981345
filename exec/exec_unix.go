//go:build unix

package exec

import (
	"os"

	"golang.org/x/sys/unix"
)

// Replace current process with program, only return on error
func (opts Options) Replace() error {
	path, argv, env, err := opts.prepare()
	if err != nil {
		return err
	}

	// Process cwd
	if len(opts.Cwd) > 0 {
		if err := os.Chdir(opts.Cwd); err != nil {
			return err
		}
	}
	return unix.Exec(path, argv, env)
}
