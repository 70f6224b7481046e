package export

import (
	"encoding/json"
	"errors"
	"io"
	"math"

	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/sim"
)

// ErrNonFinite is returned when a snapshot holds NaN or Inf samples, which
// JSON cannot represent.
var ErrNonFinite = errors.New("state holds non-finite samples")

type SnapshotData struct {
	Entity   dynamo.EntityMode  `json:"entity"`
	View     dynamo.ViewMode    `json:"view"`
	TimeStep int                `json:"time_step"`
	Ticks    int                `json:"ticks"`
	Nx       int                `json:"nx"`
	Ny       int                `json:"ny"`
	Lx       float64            `json:"lx"`
	Ly       float64            `json:"ly"`
	Params   map[string]float64 `json:"params"`
	Metrics  map[string]float64 `json:"metrics"`
	Psi      [][]float64        `json:"psi"`
	V        [][]float64        `json:"v"`
	Phi      [][]float64        `json:"Phi"`
	K        [][]float64        `json:"K"`
}

// NewSnapshotData copies the session's current state. Metrics are
// evaluated on the current state.
func NewSnapshotData(s *sim.Session) SnapshotData {
	g, fs := s.Grid(), s.State()
	return SnapshotData{
		Entity:   s.Entity(),
		View:     s.View(),
		TimeStep: fs.TimeStep,
		Ticks:    s.Ticks(),
		Nx:       g.Nx,
		Ny:       g.Ny,
		Lx:       g.Lx,
		Ly:       g.Ly,
		Params:   s.Wave().GetParams(),
		Metrics:  s.Metrics(),
		Psi:      rows(fs.Psi),
		V:        rows(fs.V),
		Phi:      rows(fs.Phi),
		K:        rows(fs.K),
	}
}

func rows(f dynamo.Field) [][]float64 {
	out := make([][]float64, f.Ny)
	for i := range out {
		out[i] = append([]float64(nil), f.Row(i)...)
	}
	return out
}

// SnapshotJSON writes the session as indented JSON.
func SnapshotJSON(w io.Writer, s *sim.Session) error {
	if !s.State().IsValid() {
		return ErrNonFinite
	}
	data := NewSnapshotData(s)
	for _, v := range data.Metrics {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNonFinite
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ReadSnapshotJSON decodes a snapshot written by SnapshotJSON.
func ReadSnapshotJSON(r io.Reader) (*SnapshotData, error) {
	var d SnapshotData
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, err
	}
	if len(d.Psi) != d.Ny {
		return nil, dynamo.ErrShapeMismatch
	}
	return &d, nil
}
