// Package cpu reports how much parallelism the host actually grants this
// process, which may be less than the machine's core count under cgroup or
// affinity restrictions.
package cpu

// Available returns the number of usable CPUs. It never returns less than 1
// and never fails; when the platform cannot be queried the runtime's CPU
// count is used instead.
func Available() int {
	if n := countAvailable(); n > 0 {
		return n
	}
	return 1
}
