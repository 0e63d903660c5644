package util

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

func MakeExcelFromData(data [][]interface{}, columns []string) *excelize.File {
	f := excelize.NewFile()
	for i, columnName := range columns {
		axis, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue("Sheet1", axis, columnName)
	}
	for row, rowValues := range data {
		for col, val := range rowValues {
			axis, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue("Sheet1", axis, val)
		}
	}
	return f
}

func GetExcelFileName(model string) string {
	return model + time.Now().UTC().Format("20060102") + ".xlsx"
}

// ReadExcelRows returns the data rows of the first sheet, header excluded.
func ReadExcelRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}
