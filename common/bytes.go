package common

import "unsafe"

// SliceToBytes reinterprets a slice of any element type as a raw byte slice
// without copying. The returned slice shares backing memory with the input,
// so callers must not let the input go out of scope while the bytes are in
// use.
//
// Parameters:
//   - data: slice to reinterpret; may be empty.
//
// Returns:
//   - []byte: the raw bytes of the slice contents, little-endian as laid out
//     in memory, or nil if the slice is empty.
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(data[0])) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), size)
}

// StructToBytes reinterprets a pointer to a struct value as a raw byte slice
// without copying.
//
// Parameters:
//   - data: pointer to the value to reinterpret.
//
// Returns:
//   - []byte: the raw bytes of the value.
func StructToBytes[T any](data *T) []byte {
	size := int(unsafe.Sizeof(*data))
	return unsafe.Slice((*byte)(unsafe.Pointer(data)), size)
}

// BytesToSlice reinterprets a raw byte slice as a slice of T without copying.
// The byte length must be a multiple of T's size; trailing bytes are ignored.
//
// Parameters:
//   - data: raw bytes laid out as consecutive T values.
//
// Returns:
//   - []T: the typed view over the bytes, or nil if data is too short for one T.
func BytesToSlice[T any](data []byte) []T {
	var t T
	size := int(unsafe.Sizeof(t))
	n := len(data) / size
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}

// Coalesce returns the first non-zero value from the provided arguments,
// or the zero value of T if all arguments are zero.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
