package compute

import "github.com/san-kum/meshmodel/internal/dynamo"

type Backend interface {
	Name() string
	Available() bool
	Laplacian(dst, f dynamo.Field, dx, dy float64)
	Cleanup()
}

var activeBackend Backend = NewCPUBackend()

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}
