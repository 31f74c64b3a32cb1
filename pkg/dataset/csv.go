package dataset

import (
	"encoding/csv"
	"io"

	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
)

// ReadCSV reads a whole csv feed into a raw row matrix. The sheet exports
// are not strictly rectangular, short rows are kept and resolved per field.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "read csv feed")
	}
	return rows, nil
}
