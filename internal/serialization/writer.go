package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/minitensor/internal/tensor"
)

// headerAlignment pads the JSON header so the data section starts on an
// 8-byte boundary.
const headerAlignment = 8

// WriteFile writes tensors to a SafeTensors file at path.
func WriteFile(path string, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	//nolint:gosec // G304: File path comes from the caller, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	if err := Write(file, tensors, metadata); err != nil {
		_ = file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close file")
}

// Write encodes tensors in SafeTensors format.
//
// Tensors are written in alphabetical order by name. The checksum of the data
// section is stored in the metadata under ChecksumKey; metadata itself is not
// modified.
func Write(w io.Writer, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	var data bytes.Buffer

	for _, name := range names {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		t := tensors[name]
		if t == nil {
			return errors.Errorf("tensor %q is nil", name)
		}

		entry, err := encodeTensor(&data, t)
		if err != nil {
			return errors.WithMessagef(err, "tensor %q", name)
		}
		header[name] = entry
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	meta[ChecksumKey] = ComputeChecksum(data.Bytes())
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}
	if pad := len(headerJSON) % headerAlignment; pad != 0 {
		headerJSON = append(headerJSON, bytes.Repeat([]byte(" "), headerAlignment-pad)...)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write tensor data")
	}
	return nil
}

// encodeTensor appends the little-endian bytes of t to buf and returns its
// header entry.
func encodeTensor(buf *bytes.Buffer, t *tensor.Tensor) (headerEntry, error) {
	dtype, ok := dtypeToSafeTensors(t.DType())
	if !ok {
		return headerEntry{}, errors.Wrapf(ErrUnsupportedDType, "%s", t.DType())
	}

	shape := t.Shape()
	if t.Len() != shape.NumElements() {
		return headerEntry{}, errors.Wrapf(tensor.ErrLengthMismatch,
			"shape %v needs %d elements, buffer has %d", shape, shape.NumElements(), t.Len())
	}

	start := int64(buf.Len())
	var scratch [8]byte
	switch t.DType() {
	case tensor.Float64:
		values, err := t.Float64s()
		if err != nil {
			return headerEntry{}, err
		}
		for _, v := range values {
			binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(v))
			buf.Write(scratch[:])
		}
	case tensor.Int32:
		values, err := t.Int32s()
		if err != nil {
			return headerEntry{}, err
		}
		for _, v := range values {
			binary.LittleEndian.PutUint32(scratch[:4], uint32(v))
			buf.Write(scratch[:4])
		}
	}

	dims := make([]int64, len(shape))
	for i, d := range shape {
		dims[i] = int64(d)
	}
	return headerEntry{
		DType:       dtype,
		Shape:       dims,
		DataOffsets: [2]int64{start, int64(buf.Len())},
	}, nil
}
