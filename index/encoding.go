package index

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// blockMagic identifies a version 1 vector block.
var blockMagic = [4]byte{'R', 'K', 'V', '1'}

const headerSize = 12

// maxBlockBytes caps the decoded payload so a corrupt header cannot drive
// an absurd allocation.
const maxBlockBytes = 1 << 31

// EncodeVectors writes a gzip-compressed vector block.
// Every row must have exactly dim values.
func EncodeVectors(w io.Writer, vecs [][]float32, dim int) error {
	if dim < 0 {
		return fmt.Errorf("%w: negative dimension %d", ErrRaggedVectors, dim)
	}
	for i, v := range vecs {
		if len(v) != dim {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedVectors, i, len(v), dim)
		}
	}

	gz := gzip.NewWriter(w)

	header := make([]byte, headerSize)
	copy(header, blockMagic[:])
	binary.LittleEndian.PutUint32(header[4:], uint32(len(vecs)))
	binary.LittleEndian.PutUint32(header[8:], uint32(dim))
	if _, err := gz.Write(header); err != nil {
		return fmt.Errorf("writing vector block header: %w", err)
	}

	row := make([]byte, dim*4)
	for _, v := range vecs {
		for i, val := range v {
			binary.LittleEndian.PutUint32(row[i*4:], math.Float32bits(val))
		}
		if _, err := gz.Write(row); err != nil {
			return fmt.Errorf("writing vector block row: %w", err)
		}
	}

	if err := gz.Close(); err != nil {
		return fmt.Errorf("flushing vector block: %w", err)
	}
	return nil
}

// DecodeVectors reads a gzip-compressed vector block, returning the rows
// and the dimension recorded in the header.
func DecodeVectors(r io.Reader) ([][]float32, int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: not a gzip stream: %w", ErrCorruptIndex, err)
	}
	defer gz.Close()

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(gz, header); err != nil {
		return nil, 0, fmt.Errorf("%w: short header: %w", ErrCorruptIndex, err)
	}
	if !bytes.Equal(header[:4], blockMagic[:]) {
		return nil, 0, fmt.Errorf("%w: bad magic %q", ErrCorruptIndex, header[:4])
	}

	rows := int(binary.LittleEndian.Uint32(header[4:]))
	dim := int(binary.LittleEndian.Uint32(header[8:]))
	if int64(rows)*int64(dim)*4 > maxBlockBytes {
		return nil, 0, fmt.Errorf("%w: header claims %d x %d values", ErrCorruptIndex, rows, dim)
	}

	vecs := make([][]float32, rows)
	row := make([]byte, dim*4)
	for i := range vecs {
		if _, err := io.ReadFull(gz, row); err != nil {
			return nil, 0, fmt.Errorf("%w: truncated at row %d: %w", ErrCorruptIndex, i, err)
		}
		v := make([]float32, dim)
		for j := range v {
			v[j] = math.Float32frombits(binary.LittleEndian.Uint32(row[j*4:]))
		}
		vecs[i] = v
	}

	if n, _ := io.Copy(io.Discard, gz); n > 0 {
		return nil, 0, fmt.Errorf("%w: %d trailing bytes after %d rows", ErrCorruptIndex, n, rows)
	}

	return vecs, dim, nil
}
