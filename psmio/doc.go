// Package psmio reads and writes posterior similarity matrices, partitions
// and run results.
//
// The format is chosen by file extension:
//
//   - .csv  one matrix row (or one partition) per line, comma separated
//   - .json a [][]float64 matrix, a partition array, or a result record
//
// Either may be wrapped in an outer compression layer named by a second
// extension, ".zst" (zstd) or ".lz4" (LZ4 frame), e.g. "psm.csv.zst".
//
// Load and Save work against any blobstore.BlobStore.
package psmio
