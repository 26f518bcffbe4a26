// Package tensor provides the core tensor types and operations for minitensor.
package tensor

// DataType is the storage tag of a tensor.
// Only two element kinds exist: 64-bit floats and 32-bit signed integers.
type DataType int

// Supported data types for tensors.
const (
	Float64 DataType = iota
	Int32
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float64:
		return 8
	case Int32:
		return 4
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}

// IsFloat reports whether values of this type can carry gradients.
func (dt DataType) IsFloat() bool {
	return dt == Float64
}
