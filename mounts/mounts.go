// Read the mount table of the calling process
//
// Every call to Source.Snapshot returns a new Table reflecting the kernel
// state at that moment, tables are never updated in place.
package mounts

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	// Mount table of the calling thread namespace, follow Unshare on any thread
	ProcThreadSelfMounts = "/proc/thread-self/mounts"

	// Mount table of thread group leader, used on kernels without /proc/thread-self
	ProcSelfMounts = "/proc/self/mounts"
)

var (
	ErrInvalidLine error = errors.New("invalid mount table line") // Line not have source, target, type and options fields
)

// One line from mount table
type Record struct {
	Source  string // Device, loop device or file backing the mount
	Path    string // Mount point
	Type    string // Filesystem type
	Options string // Options as kernel reported, not split or sorted
}

// Mount table in kernel order
type Table []Record

// Return new table with records of type fsType
func (table Table) OfType(fsType string) Table {
	out := Table{}
	for _, rec := range table {
		if rec.Type == fsType {
			out = append(out, rec)
		}
	}
	return out
}

// Source of mount table snapshots
type Source interface {
	Snapshot() (Table, error)
}

// SourceFunc allow use function as Source
type SourceFunc func() (Table, error)

func (fn SourceFunc) Snapshot() (Table, error) { return fn() }

// Mount table read from file in fstab format, like /proc/thread-self/mounts
//
// Empty File read /proc/thread-self/mounts. /proc/thread-self/mounts fall back
// to /proc/self/mounts when kernel not have it (before 3.17).
type File string

func (file File) Snapshot() (Table, error) {
	name := string(file)
	if name == "" {
		name = ProcThreadSelfMounts
	}
	mountProc, err := os.Open(name)
	if err != nil && name == ProcThreadSelfMounts && os.IsNotExist(err) {
		name = ProcSelfMounts
		mountProc, err = os.Open(name)
	}
	if err != nil {
		return nil, err
	}
	defer mountProc.Close()

	table, err := Parse(mountProc)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", name)
	}
	return table, nil
}

// Parse mount table in /proc/mounts format
//
// Dump and pass fields are optional, only first four fields are used.
// Octal escapes are decoded in all four, options included, so layer paths
// go back to mount(2) as the kernel first got them.
func Parse(r io.Reader) (Table, error) {
	out := Table{}
	buff := bufio.NewScanner(r)
	for lineNumber := 1; buff.Scan(); lineNumber++ {
		line := buff.Text()
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			// Do not log line in case it contains sensitive Mount options
			return nil, errors.Wrapf(ErrInvalidLine, "line %d: expected at least 4 fields, got %d", lineNumber, len(fields))
		}

		out = append(out, Record{
			Source:  Unescape(fields[0]),
			Path:    Unescape(fields[1]),
			Type:    Unescape(fields[2]),
			Options: Unescape(fields[3]),
		})
	}
	if err := buff.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode octal escapes (\040, \011, \012, \134) kernel write in mount table fields
func Unescape(field string) string {
	if !strings.Contains(field, `\`) {
		return field
	}

	var out strings.Builder
	out.Grow(len(field))
	for i := 0; i < len(field); i++ {
		if field[i] == '\\' && i+3 < len(field) && field[i+1] <= '3' && isOctal(field[i+1]) && isOctal(field[i+2]) && isOctal(field[i+3]) {
			out.WriteByte((field[i+1]-'0')<<6 | (field[i+2]-'0')<<3 | (field[i+3] - '0'))
			i += 3
			continue
		}
		out.WriteByte(field[i])
	}
	return out.String()
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }
