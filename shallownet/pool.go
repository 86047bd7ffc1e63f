package shallow

import (
	"sync"
)

var (
	f32Pool = make(map[int]*sync.Pool)
	f32Lock sync.Mutex
)

// borrowF32 returns a []float32 of length n. The contents are not zeroed.
func borrowF32(n int) []float32 {
	f32Lock.Lock()
	p, ok := f32Pool[n]
	f32Lock.Unlock()
	if ok {
		return p.Get().([]float32)
	}
	return make([]float32, n)
}

// returnF32 puts a slice obtained from borrowF32 back for reuse.
func returnF32(a []float32) {
	n := len(a)
	f32Lock.Lock()
	p, ok := f32Pool[n]
	if !ok {
		p = &sync.Pool{
			New: func() interface{} { return make([]float32, n) },
		}
		f32Pool[n] = p
	}
	f32Lock.Unlock()
	p.Put(a)
}
