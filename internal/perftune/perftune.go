// Package perftune picks the defensive ceiling constants the virtual text
// layer builder and matcher enforce: a node-count ceiling, a
// recursion/nearest-block-ancestor depth ceiling, and a bound on the
// Cartesian-product walk in multi-keyword fuzzy search. It sizes these
// static ceilings from host CPU topology and total memory via
// github.com/klauspost/cpuid and github.com/pbnjay/memory, the same two
// packages a worker pool would use to size a goroutine count, since this
// core runs single-threaded and has no pool to size.
package perftune

import (
	"runtime"

	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
)

// Minimums enforced regardless of host capability.
const (
	MinNodeCeiling  = 100_000
	MinDepthCeiling = 1000
)

// Budget holds the resolved ceilings for one process. Compute it once at
// startup; it is safe for concurrent read-only use.
type Budget struct {
	// NodeCeiling bounds how many DOM nodes the VTL builder will visit
	// before truncating and logging a diagnostic.
	NodeCeiling int
	// DepthCeiling bounds nearest-block-ancestor walks and the VTL
	// builder's traversal stack depth.
	DepthCeiling int
	// MaxCombinations bounds the Cartesian-product walk over per-keyword
	// match positions in multi-keyword fuzzy search.
	MaxCombinations int
}

// Compute derives a Budget from host CPU topology and total memory,
// scaling work by cores and clamping to
// a sane range rather than trusting raw runtime.NumCPU().
func Compute() Budget {
	nCPU := runtime.NumCPU()
	if nCPU < 1 {
		nCPU = 1
	}

	cores := nCPU
	if cpuid.CPU.ThreadsPerCore > 1 {
		c := nCPU / cpuid.CPU.ThreadsPerCore
		if c > 0 {
			cores = c
		}
	}

	// scale the node ceiling with available memory: roughly 1 node budget
	// slot per 4KB of RAM, floored at the package minimum and capped to avoid
	// a single pathological document consuming unbounded time even on a
	// large host.
	nodeCeiling := MinNodeCeiling
	if total := memory.TotalMemory(); total > 0 {
		scaled := int(total / (4 * 1024))
		if scaled > nodeCeiling {
			nodeCeiling = scaled
		}
		if nodeCeiling > 20_000_000 {
			nodeCeiling = 20_000_000
		}
	}

	depthCeiling := MinDepthCeiling
	if cores >= 8 {
		// deeper hosts can afford a deeper walk before the ceiling bites
		depthCeiling = MinDepthCeiling * 2
	}

	maxCombinations := 10_000 * cores
	if maxCombinations > 200_000 {
		maxCombinations = 200_000
	}
	if maxCombinations < 10_000 {
		maxCombinations = 10_000
	}

	return Budget{
		NodeCeiling:     nodeCeiling,
		DepthCeiling:    depthCeiling,
		MaxCombinations: maxCombinations,
	}
}
