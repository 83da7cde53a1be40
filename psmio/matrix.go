package psmio

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/hupe1980/binder/blobstore"
	"github.com/hupe1980/binder/psm"
)

type format uint8

const (
	formatCSV format = iota + 1
	formatJSON
)

func formatOf(name string) (format, Compression, error) {
	base, c := splitName(name)
	switch strings.ToLower(path.Ext(base)) {
	case ".csv":
		return formatCSV, c, nil
	case ".json":
		return formatJSON, c, nil
	default:
		return 0, c, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Decode parses a matrix file whose format is given by name's extension.
func Decode(name string, data []byte, optFns ...Option) (*psm.Matrix, error) {
	opts := applyOptions(optFns)

	f, c, err := formatOf(name)
	if err != nil {
		return nil, err
	}
	if data, err = decompress(data, c); err != nil {
		return nil, fmt.Errorf("psmio: decompress %s: %w", name, err)
	}

	var rows [][]float64
	switch f {
	case formatCSV:
		rows, err = readFloatRows(name, data)
	case formatJSON:
		err = opts.codec.Unmarshal(data, &rows)
	}
	if err != nil {
		return nil, err
	}
	return psm.FromRows(rows)
}

// Encode serializes m in the format given by name's extension.
func Encode(name string, m *psm.Matrix, optFns ...Option) ([]byte, error) {
	opts := applyOptions(optFns)

	f, c, err := formatOf(name)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch f {
	case formatCSV:
		data, err = writeFloatRows(m.Rows())
	case formatJSON:
		data, err = opts.codec.Marshal(m.Rows())
	}
	if err != nil {
		return nil, err
	}
	return compress(data, c)
}

// Load reads and validates a matrix from store.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*psm.Matrix, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("psmio: load %s: %w", name, err)
	}
	return Decode(name, data, optFns...)
}

// Save writes m to store.
func Save(ctx context.Context, store blobstore.BlobStore, name string, m *psm.Matrix, optFns ...Option) error {
	data, err := Encode(name, m, optFns...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

func newCSVReader(data []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comment = '#'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = true
	return r
}

func readFloatRows(name string, data []byte) ([][]float64, error) {
	r := newCSVReader(data)

	var rows [][]float64
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("psmio: %s: %w", name, err)
		}

		row := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				line, _ := r.FieldPos(j)
				return nil, &ParseError{Name: name, Line: line, Field: j + 1, cause: err}
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
}

func writeFloatRows(rows [][]float64) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rec := make([]string, 0)
	for _, row := range rows {
		rec = rec[:0]
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
