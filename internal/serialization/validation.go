package serialization

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/born-ml/minitensor/internal/tensor"
)

// Header limits.
const (
	MaxHeaderSize    = 100 * 1024 * 1024
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict checks names, layouts, bounds and overlaps (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks bounds but not overlaps between tensors.
	ValidationNormal
)

// forbiddenNameParts are substrings a tensor name may not contain.
var forbiddenNameParts = []struct {
	part   string
	reason string
}{
	{"..", "contains '..'"},
	{"/", "contains a path separator"},
	{"\\", "contains a path separator"},
	{"\x00", "contains a null byte"},
}

// ValidateTensorName rejects empty, reserved, over-long and path-like names.
func ValidateTensorName(name string) error {
	invalid := func(details string) error {
		return &ValidationError{Type: "invalid_name", Tensor: name, Details: details}
	}

	switch {
	case name == "":
		return invalid("empty tensor name")
	case name == metadataKey:
		return invalid("reserved for metadata")
	case len(name) > MaxTensorNameLen:
		return &ValidationError{
			Type:    "name_too_long",
			Tensor:  name[:32] + "...",
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}

	for _, f := range forbiddenNameParts {
		if strings.Contains(name, f.part) {
			return invalid(f.reason)
		}
	}
	return nil
}

// validateTensorLayout checks that dtype and shape account for exactly the
// byte range the header gives.
func validateTensorLayout(t TensorMeta) error {
	dtype, ok := safeTensorsToDtype(t.DType)
	if !ok {
		return &ValidationError{Type: "unsupported_dtype", Tensor: t.Name, Details: fmt.Sprintf("dtype %q", t.DType)}
	}

	shape := tensor.Shape(t.Shape)
	if err := shape.Validate(); err != nil {
		return &ValidationError{Type: "invalid_shape", Tensor: t.Name, Details: err.Error()}
	}

	n, ok := shape.CheckedNumElements()
	if !ok || n > math.MaxInt/dtype.Size() {
		return &ValidationError{Type: "invalid_shape", Tensor: t.Name, Details: fmt.Sprintf("shape %v overflows the byte size", t.Shape)}
	}

	if want := int64(n) * int64(dtype.Size()); t.Size != want {
		return &ValidationError{
			Type:    "size_mismatch",
			Tensor:  t.Name,
			Details: fmt.Sprintf("%v %s needs %d bytes, header gives %d", t.Shape, t.DType, want, t.Size),
		}
	}
	return nil
}

// validateBounds checks that a byte range lies within the data section.
func validateBounds(t TensorMeta, dataSize int64) error {
	if t.Offset < 0 || t.Size < 0 {
		return &ValidationError{Type: "negative_offset", Tensor: t.Name, Details: fmt.Sprintf("offset=%d size=%d", t.Offset, t.Size)}
	}
	if t.Size > dataSize || t.Offset > dataSize-t.Size {
		return &ValidationError{
			Type:    "out_of_bounds",
			Tensor:  t.Name,
			Details: fmt.Sprintf("[%d, %d) exceeds %d data bytes", t.Offset, t.Offset+t.Size, dataSize),
		}
	}
	return nil
}

// ValidateTensorOffsets checks that every byte range is in bounds and that no
// two ranges overlap.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	byOffset := slices.Clone(tensors)
	slices.SortFunc(byOffset, func(a, b TensorMeta) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	for i, t := range byOffset {
		if err := validateBounds(t, dataSize); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		if prev := byOffset[i-1]; prev.Offset+prev.Size > t.Offset {
			return &ValidationError{
				Type:    "offset_overlap",
				Tensor:  prev.Name,
				Tensor2: t.Name,
				Details: fmt.Sprintf("[%d, %d) and [%d, %d)", prev.Offset, prev.Offset+prev.Size, t.Offset, t.Offset+t.Size),
			}
		}
	}
	return nil
}

// ValidateHeader validates every tensor entry against a data section of
// dataSize bytes.
func ValidateHeader(tensors []TensorMeta, dataSize int64, level ValidationLevel) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{Type: "too_many_tensors", Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount)}
	}

	for _, t := range tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		if err := validateTensorLayout(t); err != nil {
			return err
		}
	}

	if level == ValidationStrict {
		return ValidateTensorOffsets(tensors, dataSize)
	}
	for _, t := range tensors {
		if err := validateBounds(t, dataSize); err != nil {
			return err
		}
	}
	return nil
}
