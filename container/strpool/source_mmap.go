//go:build linux || darwin

/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package strpool

import (
	"fmt"
	"syscall"
)

type mmapSource struct {
	pageSize int
}

// MmapSource returns a source mapping anonymous private memory for each chunk.
// Mapped pages are zero-filled by the kernel, and chunk sizes are multiples of the page size.
// Chunks are unmapped by Allocator.Destroy, an Allocator dropped without Destroy leaks them.
func MmapSource() ChunkSource {
	return mmapSource{pageSize: syscall.Getpagesize()}
}

func (s mmapSource) Granularity() int { return s.pageSize }

func (s mmapSource) Acquire(size int) ([]byte, error) {
	buf, err := syscall.Mmap(-1, 0, size,
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_ANON|syscall.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes failed: %w", size, err)
	}
	return buf, nil
}

func (mmapSource) Release(buf []byte) error {
	if err := syscall.Munmap(buf); err != nil {
		return fmt.Errorf("munmap %d bytes failed: %w", len(buf), err)
	}
	return nil
}

func (mmapSource) String() string { return SourceMmap }
