package serialization

import (
	"github.com/born-ml/minitensor/internal/tensor"
)

// SafeTensors dtype strings.
const (
	DTypeFloat64 = "F64"
	DTypeInt32   = "I32"
)

const (
	metadataKey = "__metadata__"

	// ChecksumKey is the metadata entry holding the hex SHA-256 of the data section.
	ChecksumKey = "sha256"
)

// TensorMeta describes one tensor in a SafeTensors header.
type TensorMeta struct {
	Name   string // Tensor name (e.g., "layer.0.weight")
	DType  string // SafeTensors dtype (e.g., "F64")
	Shape  []int  // Tensor shape
	Offset int64  // Offset in the data section
	Size   int64  // Size in bytes
}

// headerEntry is the JSON form of a tensor in the header.
type headerEntry struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// dtypeToSafeTensors converts tensor.DataType to SafeTensors dtype string.
func dtypeToSafeTensors(dt tensor.DataType) (string, bool) {
	switch dt {
	case tensor.Float64:
		return DTypeFloat64, true
	case tensor.Int32:
		return DTypeInt32, true
	default:
		return "", false
	}
}

// safeTensorsToDtype converts a SafeTensors dtype string to tensor.DataType.
func safeTensorsToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case DTypeFloat64:
		return tensor.Float64, true
	case DTypeInt32:
		return tensor.Int32, true
	default:
		return 0, false
	}
}
