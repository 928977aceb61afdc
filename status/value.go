package status

import (
	"math"
	"sync/atomic"
)

// MaxTextLen bounds stored text; location names longer than this are truncated
const MaxTextLen = 64

// Float is an atomic float64 stored as its bit pattern; the zero value reads 0.0
type Float struct {
	bits atomic.Uint64
}

func (f *Float) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *Float) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Text is an atomic bounded string; the zero value reads ""
type Text struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, truncated to MaxTextLen bytes
func (t *Text) Store(val string) {
	if len(val) > MaxTextLen {
		val = val[:MaxTextLen]
	}
	t.ptr.Store(&val)
}

func (t *Text) Load() string {
	if p := t.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
