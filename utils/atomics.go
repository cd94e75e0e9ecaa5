package utils

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// AtomicAddFloat64 adds val to *addr without locking. Concurrent face
// scatter-adds into shared per-cell accumulators go through here; the sum is
// order-independent up to floating point rounding.
func AtomicAddFloat64(addr *float64, val float64) {
	bits := (*uint64)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint64(bits)
		newVal := math.Float64bits(math.Float64frombits(old) + val)
		if atomic.CompareAndSwapUint64(bits, old, newVal) {
			return
		}
	}
}

// AtomicMinFloat64 lowers *addr to val if val is smaller.
func AtomicMinFloat64(addr *float64, val float64) {
	bits := (*uint64)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint64(bits)
		if math.Float64frombits(old) <= val {
			return
		}
		if atomic.CompareAndSwapUint64(bits, old, math.Float64bits(val)) {
			return
		}
	}
}

// AtomicMaxFloat64 raises *addr to val if val is larger.
func AtomicMaxFloat64(addr *float64, val float64) {
	bits := (*uint64)(unsafe.Pointer(addr))
	for {
		old := atomic.LoadUint64(bits)
		if math.Float64frombits(old) >= val {
			return
		}
		if atomic.CompareAndSwapUint64(bits, old, math.Float64bits(val)) {
			return
		}
	}
}
