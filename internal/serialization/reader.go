package serialization

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/minitensor/internal/tensor"
)

// ReaderOptions configures Read.
type ReaderOptions struct {
	SkipChecksumValidation bool            // Skip checksum validation (faster but less safe)
	ValidationLevel        ValidationLevel // Validation strictness level
}

// ReadFile loads every tensor from a SafeTensors file with strict validation.
func ReadFile(path string) (map[string]*tensor.Tensor, map[string]string, error) {
	//nolint:gosec // G304: File path comes from the caller, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open file")
	}
	defer func() {
		_ = file.Close()
	}()

	return Read(file)
}

// Read decodes a SafeTensors stream with strict validation.
func Read(r io.Reader) (map[string]*tensor.Tensor, map[string]string, error) {
	return ReadWithOptions(r, ReaderOptions{ValidationLevel: ValidationStrict})
}

// ReadWithOptions decodes a SafeTensors stream.
//
// The returned tensors own their buffers and do not require gradients. The
// metadata map is nil when the stream has none.
func ReadWithOptions(r io.Reader, opts ReaderOptions) (map[string]*tensor.Tensor, map[string]string, error) {
	metas, metadata, err := readHeader(r)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to parse header")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read tensor data")
	}

	if err := ValidateHeader(metas, int64(len(data)), opts.ValidationLevel); err != nil {
		return nil, nil, errors.WithMessage(err, "validation failed")
	}

	if stored, ok := metadata[ChecksumKey]; ok && !opts.SkipChecksumValidation {
		if err := ValidateChecksum(data, stored); err != nil {
			return nil, nil, err
		}
	}

	tensors := make(map[string]*tensor.Tensor, len(metas))
	for _, meta := range metas {
		t, err := decodeTensor(meta, data[meta.Offset:meta.Offset+meta.Size])
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "tensor %q", meta.Name)
		}
		tensors[meta.Name] = t
	}
	return tensors, metadata, nil
}

// readHeader reads the size prefix and JSON header. Tensor entries are
// returned in data offset order.
func readHeader(r io.Reader) ([]TensorMeta, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse header JSON")
	}

	var metadata map[string]string
	if m, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(m, &metadata); err != nil {
			return nil, nil, errors.Wrap(err, "failed to parse metadata")
		}
		delete(raw, metadataKey)
	}

	metas := make([]TensorMeta, 0, len(raw))
	for name, msg := range raw {
		var entry headerEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to parse entry for %q", name)
		}
		shape := make([]int, len(entry.Shape))
		for i, d := range entry.Shape {
			shape[i] = int(d)
		}
		metas = append(metas, TensorMeta{
			Name:   name,
			DType:  entry.DType,
			Shape:  shape,
			Offset: entry.DataOffsets[0],
			Size:   entry.DataOffsets[1] - entry.DataOffsets[0],
		})
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].Offset < metas[j].Offset
	})
	return metas, metadata, nil
}

func decodeTensor(meta TensorMeta, data []byte) (*tensor.Tensor, error) {
	dtype, ok := safeTensorsToDtype(meta.DType)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedDType, "%q", meta.DType)
	}

	n := len(data) / dtype.Size()
	switch dtype {
	case tensor.Float64:
		values := make([]float64, n)
		for i := range values {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
		}
		return tensor.FromFloat64(values, meta.Shape)
	default:
		values := make([]int32, n)
		for i := range values {
			values[i] = int32(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return tensor.FromInt32(values, meta.Shape)
	}
}
