package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/wbdash/internal/domain/model"
	"github.com/okian/wbdash/internal/domain/types"
)

const defaultSheet = "Sheet1"

// maxSheetName is the longest sheet name Excel accepts.
const maxSheetName = 31

var sheetNameReplacer = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")")

func sheetName(title string) string {
	r := []rune(strings.TrimSpace(sheetNameReplacer.Replace(title)))
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	if len(r) == 0 {
		return "data"
	}
	return string(r)
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func newSheet(title string) *sheetWriter {
	f := excelize.NewFile()
	sw := &sheetWriter{f: f, sheet: sheetName(title)}
	sw.err = f.SetSheetName(defaultSheet, sw.sheet)
	return sw
}

func (sw *sheetWriter) row(n int, values []interface{}) {
	if sw.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		sw.err = err
		return
	}
	sw.err = sw.f.SetSheetRow(sw.sheet, cell, &values)
}

func (sw *sheetWriter) header(values []interface{}) {
	sw.row(1, values)
	if sw.err != nil {
		return
	}
	style, err := sw.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		sw.err = err
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(values), 1)
	if sw.err = sw.f.SetCellStyle(sw.sheet, "A1", last, style); sw.err != nil {
		return
	}
	lastCol, _ := excelize.ColumnNumberToName(len(values))
	if sw.err = sw.f.SetColWidth(sw.sheet, "A", lastCol, 18); sw.err != nil {
		return
	}
	sw.err = sw.f.SetPanes(sw.sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (sw *sheetWriter) flush(w io.Writer) error {
	defer func() { _ = sw.f.Close() }()
	if sw.err != nil {
		return fmt.Errorf("build workbook: %w", sw.err)
	}
	if err := sw.f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// PivotWorkbook writes a year × country table. Missing cells stay empty.
func PivotWorkbook(w io.Writer, title, yearHeader string, p model.Pivot) error {
	sw := newSheet(title)
	head := make([]interface{}, 0, len(p.Names)+1)
	head = append(head, yearHeader)
	for _, n := range p.Names {
		head = append(head, n)
	}
	sw.header(head)
	for i, y := range p.Years {
		row := make([]interface{}, 0, len(p.Cells[i])+1)
		row = append(row, y)
		for _, c := range p.Cells[i] {
			if c == nil {
				row = append(row, nil)
				continue
			}
			row = append(row, *c)
		}
		sw.row(i+2, row)
	}
	return sw.flush(w)
}

// RankingHeaders are the column captions of a ranking workbook.
type RankingHeaders struct {
	Rank, Code, Name, Score, Raw string
}

// RankingWorkbook writes one row per ranking entry.
func RankingWorkbook(w io.Writer, title string, h RankingHeaders, entries []types.Entry) error {
	sw := newSheet(title)
	sw.header([]interface{}{h.Rank, h.Code, h.Name, h.Score, h.Raw})
	for i, e := range entries {
		sw.row(i+2, []interface{}{e.Rank, e.CountryCode, e.Name, e.Score, e.Raw})
	}
	return sw.flush(w)
}
