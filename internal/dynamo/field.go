package dynamo

import "math"

// Field is a 2D scalar array in row-major order: element (i, j) is row i
// (the y index) and column j (the x index).
type Field struct {
	Nx, Ny int
	Data   []float64
}

func NewField(nx, ny int) Field {
	return Field{Nx: nx, Ny: ny, Data: make([]float64, nx*ny)}
}

// Full returns a field with every sample set to v.
func Full(nx, ny int, v float64) Field {
	f := NewField(nx, ny)
	f.Fill(v)
	return f
}

func (f Field) At(i, j int) float64     { return f.Data[i*f.Nx+j] }
func (f Field) Set(i, j int, v float64) { f.Data[i*f.Nx+j] = v }
func (f Field) Row(i int) []float64     { return f.Data[i*f.Nx : (i+1)*f.Nx] }
func (f Field) Len() int                { return len(f.Data) }

func (f Field) SameShape(o Field) bool { return f.Nx == o.Nx && f.Ny == o.Ny }

func (f Field) Fill(v float64) {
	for k := range f.Data {
		f.Data[k] = v
	}
}

func (f Field) Clone() Field {
	c := Field{Nx: f.Nx, Ny: f.Ny, Data: make([]float64, len(f.Data))}
	copy(c.Data, f.Data)
	return c
}

// CopyFrom overwrites f with the contents of src.
func (f Field) CopyFrom(src Field) error {
	if !f.SameShape(src) {
		return ErrShapeMismatch
	}
	copy(f.Data, src.Data)
	return nil
}

// Shift rolls the field periodically so that out[i, j] = f[i-a, j-b],
// indices taken modulo the shape.
func (f Field) Shift(a, b int) Field {
	out := NewField(f.Nx, f.Ny)
	for i := 0; i < f.Ny; i++ {
		si := mod(i-a, f.Ny)
		for j := 0; j < f.Nx; j++ {
			out.Data[i*f.Nx+j] = f.Data[si*f.Nx+mod(j-b, f.Nx)]
		}
	}
	return out
}

func (f Field) IsValid() bool {
	for _, v := range f.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (f Field) Norm() float64 {
	sum := 0.0
	for _, v := range f.Data {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (f Field) Mean() float64 {
	if len(f.Data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range f.Data {
		sum += v
	}
	return sum / float64(len(f.Data))
}

// Range returns the smallest and largest sample.
func (f Field) Range() (lo, hi float64) {
	if len(f.Data) == 0 {
		return 0, 0
	}
	lo, hi = f.Data[0], f.Data[0]
	for _, v := range f.Data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// ArgMax returns the row and column of the first largest sample.
func (f Field) ArgMax() (i, j int) {
	best := 0
	for k, v := range f.Data {
		if v > f.Data[best] {
			best = k
		}
	}
	return best / f.Nx, best % f.Nx
}

// MaxAbs returns the largest absolute sample value.
func (f Field) MaxAbs() float64 {
	m := 0.0
	for _, v := range f.Data {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func (f Field) Equal(o Field) bool {
	if !f.SameShape(o) {
		return false
	}
	for k := range f.Data {
		if f.Data[k] != o.Data[k] {
			return false
		}
	}
	return true
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
