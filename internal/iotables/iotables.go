// Package iotables reads the tabular files of an extracted pack and
// normalises them into typed records.
package iotables

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/kioskware/kioskpack/internal/iofs"
	"github.com/kioskware/kioskpack/pkg/manifest"
	"github.com/kioskware/kioskpack/pkg/normalize"
	"github.com/kioskware/kioskpack/pkg/schema"
)

var bom = []byte("\xef\xbb\xbf")

// Result holds normalised tables and the number of rows dropped per
// table because they had no usable key.
type Result struct {
	Tables  *normalize.Tables
	Dropped map[string]int
}

// LoadAll reads and normalises every content table declared in the
// manifest. Tables absent from the manifest are empty. Timestamps that
// are missing in the data are set to now.
func LoadAll(dir string, m *manifest.Manifest, now string) (*Result, error) {
	res := &Result{
		Tables:  &normalize.Tables{},
		Dropped: make(map[string]int),
	}

	for _, name := range schema.ContentTables() {
		tbl, ok := m.FindTable(name)
		if !ok {
			slog.Info("Table not declared in manifest", "table", name)
			continue
		}

		recs, err := ReadTable(dir, tbl)
		if err != nil {
			return nil, err
		}

		dropped := res.Tables.Add(name, recs, now)
		if dropped > 0 {
			res.Dropped[name] = dropped
			slog.Warn("Dropped rows without a usable key",
				"table", name, "dropped", dropped)
		}
		slog.Info("Table loaded", "table", name,
			"records", len(recs), "dropped", dropped)
	}
	return res, nil
}

// ReadTable reads the file of a table descriptor and returns its
// records. A declared hash must match the file content.
func ReadTable(dir string, tbl manifest.Table) ([]normalize.Record, error) {
	if tbl.Format != "" && tbl.Format != manifest.DefaultFormat {
		return nil, TableReadFailureError(
			tbl.Name, tbl.Path,
			fmt.Errorf("unsupported format %q", tbl.Format),
		)
	}

	path, err := iofs.Within(dir, tbl.Path)
	if err != nil {
		return nil, TableReadFailureError(tbl.Name, tbl.Path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, TableReadFailureError(tbl.Name, path, err)
	}

	if want := strings.ToLower(strings.TrimSpace(tbl.Hash)); want != "" {
		if got := iofs.HashBytes(data); got != want {
			return nil, TableReadFailureError(tbl.Name, path,
				fmt.Errorf("hash mismatch: declared %s, computed %s", want, got))
		}
	}

	recs, err := ParseCSV(data)
	if err != nil {
		return nil, TableReadFailureError(tbl.Name, path, err)
	}
	return recs, nil
}

// ParseCSV parses UTF-8 CSV text with a header row. It tolerates a
// byte order mark, CRLF line endings and broken UTF-8. Records with
// only empty fields are skipped.
func ParseCSV(data []byte) ([]normalize.Record, error) {
	data = bytes.TrimPrefix(data, bom)
	text := gnlib.FixUtf8(string(data))
	text = strings.ReplaceAll(text, "\r\n", "\n")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var res []normalize.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}

		rec := make(normalize.Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		res = append(res, rec)
	}
	return res, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
