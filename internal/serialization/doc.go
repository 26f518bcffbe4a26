// Package serialization saves and loads tensors in the SafeTensors format.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON, space padded to 8 bytes]
//	  [Tensor data: raw little-endian bytes]
//
// The header maps each tensor name to its dtype ("F64" or "I32"), shape and
// byte range within the data section. The optional "__metadata__" entry
// holds string pairs; Write stores a SHA-256 checksum of the data section
// there and Read verifies it when present.
//
// Only values are stored. Loaded tensors are leaves that do not require
// gradients.
//
// Example usage:
//
//	err := serialization.WriteFile("params.safetensors", map[string]*tensor.Tensor{
//	    "weight": w,
//	    "bias":   b,
//	}, nil)
//
//	tensors, metadata, err := serialization.ReadFile("params.safetensors")
package serialization
