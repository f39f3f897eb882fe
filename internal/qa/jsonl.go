package qa

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// WriteItems writes one JSON object per line.
func WriteItems(w io.Writer, items []Item) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return eris.Wrapf(err, "qa: encode item %s", item.ID)
		}
	}
	return eris.Wrap(bw.Flush(), "qa: flush items")
}

// ReadItems reads a JSONL item stream.
func ReadItems(r io.Reader) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var item Item
		if err := json.Unmarshal(sc.Bytes(), &item); err != nil {
			return nil, eris.Wrapf(err, "qa: decode line %d", line)
		}
		items = append(items, item)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "qa: scan items")
	}
	return items, nil
}

// LoadItems reads an item file from disk.
func LoadItems(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "qa: open %s", path)
	}
	defer f.Close()
	return ReadItems(f)
}

// SaveItems writes an item file to disk.
func SaveItems(path string, items []Item) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "qa: create %s", path)
	}
	defer f.Close()
	if err := WriteItems(f, items); err != nil {
		return err
	}
	return eris.Wrapf(f.Close(), "qa: close %s", path)
}
