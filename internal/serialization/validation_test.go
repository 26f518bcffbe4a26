package serialization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// meta describes a tensor of dtype and shape at offset with its exact byte size.
func meta(name, dtype string, offset int64, shape ...int) TensorMeta {
	size := int64(8)
	if dtype == DTypeInt32 {
		size = 4
	}
	for _, d := range shape {
		size *= int64(d)
	}
	return TensorMeta{Name: name, DType: dtype, Shape: shape, Offset: offset, Size: size}
}

func requireValidationType(t *testing.T, err error, want string) {
	t.Helper()
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, want, validationErr.Type, validationErr.Error())
}

func TestValidateHeader_ByteSizes(t *testing.T) {
	// A [2,3] F64 tensor takes 48 bytes, a [3] I32 tensor 12.
	w := meta("w", DTypeFloat64, 0, 2, 3)
	c := meta("c", DTypeInt32, 48, 3)
	assert.Equal(t, int64(48), w.Size)
	assert.Equal(t, int64(12), c.Size)

	require.NoError(t, ValidateHeader([]TensorMeta{w, c}, 60, ValidationStrict))
	requireValidationType(t, ValidateHeader([]TensorMeta{w, c}, 59, ValidationStrict), "out_of_bounds")
}

func TestValidateHeader_Layout(t *testing.T) {
	tests := []struct {
		name string
		meta TensorMeta
		want string
	}{
		{"I32 sized as F64", TensorMeta{Name: "t", DType: DTypeInt32, Shape: []int{2}, Size: 16}, "size_mismatch"},
		{"F64 sized as I32", TensorMeta{Name: "t", DType: DTypeFloat64, Shape: []int{2}, Size: 8}, "size_mismatch"},
		{"scalar with no bytes", TensorMeta{Name: "t", DType: DTypeFloat64, Shape: []int{}, Size: 0}, "size_mismatch"},
		{"half precision", TensorMeta{Name: "t", DType: "F16", Shape: []int{2}, Size: 4}, "unsupported_dtype"},
		{"negative dimension", TensorMeta{Name: "t", DType: DTypeInt32, Shape: []int{-1}}, "invalid_shape"},
		{"element count overflow", TensorMeta{Name: "t", DType: DTypeFloat64, Shape: []int{1 << 62, 4}}, "invalid_shape"},
		{"byte size overflow", TensorMeta{Name: "t", DType: DTypeFloat64, Shape: []int{1 << 61}}, "invalid_shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireValidationType(t, ValidateHeader([]TensorMeta{tt.meta}, 1<<20, ValidationStrict), tt.want)
		})
	}
}

func TestValidateHeader_ZeroDimension(t *testing.T) {
	empty := meta("empty", DTypeFloat64, 0, 1<<62, 0)
	require.NoError(t, ValidateHeader([]TensorMeta{empty}, 0, ValidationStrict))
}

func TestValidateHeader_Overlap(t *testing.T) {
	a := meta("a", DTypeFloat64, 0, 4)  // [0, 32)
	b := meta("b", DTypeInt32, 24, 4)   // [24, 40)
	c := meta("c", DTypeInt32, 32, 2)   // [32, 40), touches a only at its end

	requireValidationType(t, ValidateHeader([]TensorMeta{b, a}, 40, ValidationStrict), "offset_overlap")
	require.NoError(t, ValidateHeader([]TensorMeta{b, a}, 40, ValidationNormal))
	require.NoError(t, ValidateHeader([]TensorMeta{c, a}, 40, ValidationStrict))
}

func TestValidateHeader_NormalStillChecksBounds(t *testing.T) {
	requireValidationType(t, ValidateHeader([]TensorMeta{meta("a", DTypeInt32, 8, 4)}, 16, ValidationNormal), "out_of_bounds")

	negative := meta("a", DTypeInt32, -4, 1)
	requireValidationType(t, ValidateHeader([]TensorMeta{negative}, 16, ValidationNormal), "negative_offset")
}

func TestValidateTensorName(t *testing.T) {
	for _, name := range []string{"weight", "layer.0.bias", "optim:adam.m", "W_1"} {
		assert.NoError(t, ValidateTensorName(name), name)
	}

	for _, name := range []string{"", "__metadata__", "../w", "layer/0", `layer\0`, "w\x00b"} {
		requireValidationType(t, ValidateTensorName(name), "invalid_name")
	}
	requireValidationType(t, ValidateTensorName(strings.Repeat("w", MaxTensorNameLen+1)), "name_too_long")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Type: "offset_overlap", Tensor: "a", Tensor2: "b", Details: "[0, 32) and [24, 40)"}
	assert.Equal(t, `offset_overlap: tensors "a" and "b": [0, 32) and [24, 40)`, err.Error())

	err = &ValidationError{Type: "too_many_tensors", Details: "got 2, max 1"}
	assert.Equal(t, "too_many_tensors: got 2, max 1", err.Error())
}

func FuzzReadHeader(f *testing.F) {
	f.Add([]byte(`{"x":{"dtype":"I32","shape":[1],"data_offsets":[0,4]}}`), []byte{1, 0, 0, 0})
	f.Add([]byte(`{"x":{"dtype":"F64","shape":[4611686018427387904,4],"data_offsets":[0,0]}}`), []byte{})
	f.Add([]byte(`{"x":{"dtype":"I32","shape":[1],"data_offsets":[-4,0]}}`), []byte{})

	f.Fuzz(func(t *testing.T, header, data []byte) {
		var buf strings.Builder
		size := uint64(len(header))
		for range 8 {
			buf.WriteByte(byte(size))
			size >>= 8
		}
		buf.Write(header)
		buf.Write(data)

		tensors, _, err := ReadWithOptions(strings.NewReader(buf.String()), ReaderOptions{SkipChecksumValidation: true})
		if err != nil {
			return
		}
		for name, x := range tensors {
			if n, ok := x.Shape().CheckedNumElements(); !ok || n != x.Len() {
				t.Fatalf("tensor %q: shape %v disagrees with %d values", name, x.Shape(), x.Len())
			}
		}
	})
}
