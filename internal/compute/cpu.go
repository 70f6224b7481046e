package compute

import (
	"runtime"
	"sync"

	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/physics"
)

// grids with fewer rows than this are computed on the calling goroutine
const parallelRows = 64

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

// WithWorkers returns a backend using n goroutines, at least one.
func WithWorkers(n int) *CPUBackend {
	return &CPUBackend{workers: max(n, 1)}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

// Laplacian splits the rows of f into one band per worker. The result is
// identical to physics.LaplacianInto.
func (c *CPUBackend) Laplacian(dst, f dynamo.Field, dx, dy float64) {
	rows := f.Ny
	if rows < parallelRows || c.workers == 1 {
		physics.LaplacianRows(dst, f, dx, dy, 0, rows)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (rows + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, rows)
		if start >= end {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			physics.LaplacianRows(dst, f, dx, dy, start, end)
		}()
	}

	wg.Wait()
}
