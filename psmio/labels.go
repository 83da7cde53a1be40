package psmio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/binder/blobstore"
)

// DecodeLabels parses one or more partitions.
//
// A CSV file holds one partition per line. A JSON file holds a single
// label array, an array of label arrays, or a result record with a
// "labels" field.
func DecodeLabels(name string, data []byte, optFns ...Option) ([][]int, error) {
	opts := applyOptions(optFns)

	f, c, err := formatOf(name)
	if err != nil {
		return nil, err
	}
	if data, err = decompress(data, c); err != nil {
		return nil, fmt.Errorf("psmio: decompress %s: %w", name, err)
	}

	var parts [][]int
	switch f {
	case formatCSV:
		parts, err = readIntRows(name, data)
	case formatJSON:
		parts, err = unmarshalLabels(opts, data)
	}
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPartitions, name)
	}
	return parts, nil
}

// LoadLabels reads partitions from store.
func LoadLabels(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) ([][]int, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("psmio: load %s: %w", name, err)
	}
	return DecodeLabels(name, data, optFns...)
}

func unmarshalLabels(opts options, data []byte) ([][]int, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		var rec struct {
			Labels []int `json:"labels"`
		}
		if err := opts.codec.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		if rec.Labels == nil {
			return nil, nil
		}
		return [][]int{rec.Labels}, nil
	}

	if nested := bytes.TrimLeft(trimmed[1:], " \t\r\n"); len(nested) > 0 && nested[0] == '[' {
		var parts [][]int
		err := opts.codec.Unmarshal(data, &parts)
		return parts, err
	}

	var labels []int
	if err := opts.codec.Unmarshal(data, &labels); err != nil {
		return nil, err
	}
	return [][]int{labels}, nil
}

func readIntRows(name string, data []byte) ([][]int, error) {
	r := newCSVReader(data)

	var rows [][]int
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("psmio: %s: %w", name, err)
		}

		row := make([]int, len(rec))
		for j, field := range rec {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				line, _ := r.FieldPos(j)
				return nil, &ParseError{Name: name, Line: line, Field: j + 1, cause: err}
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
}
