// Hand process over to another program after reconciling
//
// Replace call execve from the calling thread, new program keep that
// thread mount namespace.
package exec

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
)

var (
	ErrNoCommand = errors.New("no command, require command")
)

type Options struct {
	Cwd         string            `json:"cwd"`       // Folder to run program
	Arguments   []string          `json:"arguments"` // Program and arguments
	Environment map[string]string `json:"env"`       // Extra env, added to current process env
}

// Resolve program path and build argv and envp to execve
func (opts Options) prepare() (string, []string, []string, error) {
	if len(opts.Arguments) == 0 {
		return "", nil, nil, ErrNoCommand
	}

	path, err := exec.LookPath(opts.Arguments[0])
	if err != nil {
		return "", nil, nil, err
	}

	env := os.Environ()
	keys := make([]string, 0, len(opts.Environment))
	for envKey := range opts.Environment {
		keys = append(keys, envKey)
	}
	sort.Strings(keys)
	for _, envKey := range keys {
		env = append(env, fmt.Sprintf("%s=%s", envKey, opts.Environment[envKey]))
	}
	return path, opts.Arguments, env, nil
}
