package dataset

import (
	"io"

	"github.com/angiepellets-dev/Holz-Markt/pkg/util"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of a workbook feed into the same raw row
// matrix shape the csv reader produces, so both formats share the parse
// strategies.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "open xlsx feed")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "read xlsx sheet %s", sheet)
	}
	return rows, nil
}
