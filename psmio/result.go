package psmio

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/hupe1980/binder"
	"github.com/hupe1980/binder/blobstore"
)

// EncodeResult serializes res. JSON files hold the full result record, CSV
// files only the labels as a single row, readable by DecodeLabels.
func EncodeResult(name string, res *binder.Result, optFns ...Option) ([]byte, error) {
	opts := applyOptions(optFns)

	f, c, err := formatOf(name)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch f {
	case formatCSV:
		data, err = writeLabelsRow(res.Labels)
	case formatJSON:
		data, err = opts.codec.Marshal(res)
	}
	if err != nil {
		return nil, err
	}
	return compress(data, c)
}

// SaveResult writes res to store.
func SaveResult(ctx context.Context, store blobstore.BlobStore, name string, res *binder.Result, optFns ...Option) error {
	data, err := EncodeResult(name, res, optFns...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

func writeLabelsRow(labels []int) ([]byte, error) {
	rec := make([]string, len(labels))
	for i, l := range labels {
		rec[i] = strconv.Itoa(l)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(rec); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
