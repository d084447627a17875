package batch

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nalgeon/be"
)

func TestDo(t *testing.T) {
	out := make([]int, 50)
	Do(len(out), 4, func(i int) {
		out[i] = i * i
	})
	for i, v := range out {
		be.Equal(t, v, i*i)
	}
}

func TestDoLimit(t *testing.T) {
	var active, peak atomic.Int32
	var mu sync.Mutex
	started := 0

	Do(40, 3, func(int) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		mu.Lock()
		started++
		mu.Unlock()
		active.Add(-1)
	})

	be.Equal(t, started, 40)
	be.True(t, peak.Load() <= 3)
}

func TestDoEmpty(t *testing.T) {
	called := false
	Do(0, 0, func(int) { called = true })
	be.True(t, !called)
}
