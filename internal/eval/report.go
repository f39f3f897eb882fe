package eval

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

var itemColumns = []string{
	"idx", "type", "source", "answered", "correct", "hallucination",
	"gold", "pred", "prompt", "model_raw",
}

// WriteResultsJSONL writes one result record per line.
func WriteResultsJSONL(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "eval: create %s", path)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	enc := json.NewEncoder(bw)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return eris.Wrapf(err, "eval: encode result %d", r.Index)
		}
	}
	if err := bw.Flush(); err != nil {
		return eris.Wrapf(err, "eval: flush %s", path)
	}
	return eris.Wrapf(f.Close(), "eval: close %s", path)
}

// WriteItemsCSV writes the full per-item table.
func WriteItemsCSV(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "eval: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(itemColumns); err != nil {
		return eris.Wrap(err, "eval: write csv header")
	}
	for _, r := range results {
		if err := w.Write(itemRow(r)); err != nil {
			return eris.Wrapf(err, "eval: write csv row %d", r.Index)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "eval: flush %s", path)
	}
	return eris.Wrapf(f.Close(), "eval: close %s", path)
}

// WriteItemsXLSX writes the same per-item table as a workbook.
func WriteItemsXLSX(path string, results []Result) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("items")
	if err != nil {
		return eris.Wrap(err, "eval: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range itemColumns {
		header.AddCell().Value = col
	}
	for _, r := range results {
		row := sheet.AddRow()
		for _, v := range itemRow(r) {
			row.AddCell().Value = v
		}
	}

	return eris.Wrapf(file.Save(path), "eval: save %s", path)
}

// WriteWrongCSV writes only the answered-but-incorrect items.
func WriteWrongCSV(path string, results []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "eval: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"idx", "type", "source", "gold", "pred", "prompt", "model_raw"}); err != nil {
		return eris.Wrap(err, "eval: write csv header")
	}
	for _, r := range results {
		if !r.Hallucination {
			continue
		}
		row := []string{
			itoa(r.Index), string(r.Category), r.Source,
			string(r.Gold), r.Pred, r.Prompt, r.RawOutput,
		}
		if err := w.Write(row); err != nil {
			return eris.Wrapf(err, "eval: write csv row %d", r.Index)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "eval: flush %s", path)
	}
	return eris.Wrapf(f.Close(), "eval: close %s", path)
}

// WriteSummary writes the summary document.
func WriteSummary(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return eris.Wrap(err, "eval: marshal summary")
	}
	return eris.Wrapf(os.WriteFile(path, data, 0644), "eval: write %s", path)
}

func itemRow(r Result) []string {
	return []string{
		itoa(r.Index), string(r.Category), r.Source,
		boolFlag(r.Answered), boolFlag(r.Correct), boolFlag(r.Hallucination),
		string(r.Gold), r.Pred, r.Prompt, r.RawOutput,
	}
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
