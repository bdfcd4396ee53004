package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// xlsCharsets are tried in order; old retailer exports are mostly cp1252.
var xlsCharsets = []string{"utf-8", "windows-1252", "windows-1251"}

const xlsProbeCols = 256

// sheetWidth finds the rightmost non-empty column; Row.LastCol is not
// reliable for sheets written by older exporters.
func sheetWidth(sheet *xls.WorkSheet) int {
	width := 1
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		for j := xlsProbeCols - 1; j >= width; j-- {
			if normalizeCell(row.Col(j)) != "" {
				width = j + 1
				break
			}
		}
	}
	return width
}

// readXLS reads the first sheet of a legacy workbook.
func readXLS(r io.Reader, headerRow int) (Table, error) {
	if headerRow <= 0 {
		return Table{}, errors.New("headerRow must be 1-based and >= 1")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return Table{}, err
	}

	var wb *xls.WorkBook
	for _, ch := range xlsCharsets {
		if wb, err = xls.OpenReader(bytes.NewReader(b), ch); err == nil && wb != nil {
			break
		}
	}
	if wb == nil {
		if err == nil {
			err = errors.New("xls: failed to open workbook")
		}
		return Table{}, err
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return Table{}, nil
	}

	width := sheetWidth(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		cols := make([]string, width)
		if row := sheet.Row(i); row != nil {
			for j := range cols {
				cols[j] = normalizeCell(row.Col(j))
			}
		}
		rows = append(rows, cols)
	}

	h := pickHeader(rows, headerRow)
	return rowsToTable(rows, h, headerRow), nil
}
