// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serialization saves and loads named tensors in the SafeTensors format.
//
// Example:
//
//	err := serialization.Save("params.safetensors", map[string]*tensor.Tensor{
//	    "weight": w,
//	}, map[string]string{"epoch": "10"})
//
//	tensors, metadata, err := serialization.Load("params.safetensors")
package serialization

import (
	"io"

	"github.com/born-ml/minitensor/internal/serialization"
	"github.com/born-ml/minitensor/internal/tensor"
)

// ChecksumKey is the metadata key holding the SHA-256 of the tensor data.
const ChecksumKey = serialization.ChecksumKey

// Errors reported while reading.
var (
	ErrChecksumMismatch = serialization.ErrChecksumMismatch
	ErrHeaderTooLarge   = serialization.ErrHeaderTooLarge
	ErrUnsupportedDType = serialization.ErrUnsupportedDType
)

// ValidationError describes a malformed header.
type ValidationError = serialization.ValidationError

// Save writes tensors and metadata to path.
func Save(path string, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	return serialization.WriteFile(path, tensors, metadata)
}

// Load reads every tensor stored at path.
func Load(path string) (map[string]*tensor.Tensor, map[string]string, error) {
	return serialization.ReadFile(path)
}

// Write encodes tensors to w.
func Write(w io.Writer, tensors map[string]*tensor.Tensor, metadata map[string]string) error {
	return serialization.Write(w, tensors, metadata)
}

// Read decodes tensors from r.
func Read(r io.Reader) (map[string]*tensor.Tensor, map[string]string, error) {
	return serialization.Read(r)
}
