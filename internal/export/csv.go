package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/meshmodel/internal/dynamo"
)

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// FieldCSV writes f as a matrix: one CSV record per row i, Nx columns.
func FieldCSV(w io.Writer, f dynamo.Field) error {
	cw := csv.NewWriter(w)
	record := make([]string, f.Nx)
	for i := 0; i < f.Ny; i++ {
		for j, v := range f.Row(i) {
			record[j] = formatFloat(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SnapshotCSV writes one record per sample with its coordinates and all
// four fields, preceded by a header.
func SnapshotCSV(w io.Writer, g *dynamo.Grid, fs *dynamo.FieldState) error {
	if fs.Psi.Nx != g.Nx || fs.Psi.Ny != g.Ny {
		return fmt.Errorf("%w: state %dx%d on grid %dx%d", dynamo.ErrShapeMismatch, fs.Psi.Ny, fs.Psi.Nx, g.Ny, g.Nx)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "i", "j", "x", "y", "psi", "v", "Phi", "K"}); err != nil {
		return err
	}
	t := strconv.Itoa(fs.TimeStep)
	for i := 0; i < g.Ny; i++ {
		for j := 0; j < g.Nx; j++ {
			err := cw.Write([]string{
				t,
				strconv.Itoa(i),
				strconv.Itoa(j),
				formatFloat(g.XAt(j)),
				formatFloat(g.YAt(i)),
				formatFloat(fs.Psi.At(i, j)),
				formatFloat(fs.V.At(i, j)),
				formatFloat(fs.Phi.At(i, j)),
				formatFloat(fs.K.At(i, j)),
			})
			if err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFieldCSV parses a matrix written by FieldCSV.
func ReadFieldCSV(r io.Reader) (dynamo.Field, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return dynamo.Field{}, err
	}
	if len(records) == 0 {
		return dynamo.Field{}, fmt.Errorf("%w: empty csv", dynamo.ErrShapeMismatch)
	}
	ny, nx := len(records), len(records[0])
	f := dynamo.NewField(nx, ny)
	for i, rec := range records {
		for j, s := range rec {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return dynamo.Field{}, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			f.Set(i, j, v)
		}
	}
	return f, nil
}
