//go:build !linux

package cpu

import "runtime"

func countAvailable() int {
	return runtime.NumCPU()
}
