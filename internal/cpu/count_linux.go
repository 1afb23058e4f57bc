//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// countAvailable reads the scheduling affinity mask of the calling thread,
// so limits imposed by taskset or container runtimes are respected.
func countAvailable() int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return runtime.NumCPU()
	}
	return mask.Count()
}
