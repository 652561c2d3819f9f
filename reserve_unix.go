//go:build unix

package arena

import "golang.org/x/sys/unix"

// reserve maps size bytes of private anonymous memory. The kernel backs
// pages lazily and hands them out zeroed.
func reserve(size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}
