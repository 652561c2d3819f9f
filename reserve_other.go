//go:build !unix

package arena

// reserve falls back to a heap slice where anonymous mappings are not available.
func reserve(size int) ([]byte, func([]byte) error, error) {
	return make([]byte, size), nil, nil
}
