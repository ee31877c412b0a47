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

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"
)

// ChunkSource provides the memory of chunks.
type ChunkSource interface {
	// Granularity returns the system allocation unit of the source, or 0 if it has none.
	// Chunk sizes are rounded up to a multiple of it.
	Granularity() int

	// Acquire returns a buf with len(buf) >= size.
	Acquire(size int) ([]byte, error)

	// Release gives back a buf returned by Acquire. It's called once per buf.
	Release(buf []byte) error
}

// Names accepted by SourceByName and Options.Source.
const (
	SourceHeap  = "heap"
	SourceDirty = "dirty"
	SourcePool  = "pool"
	SourceMmap  = "mmap"
)

// SourceByName returns the builtin ChunkSource with the given name.
func SourceByName(name string) (ChunkSource, error) {
	switch name {
	case SourceHeap:
		return HeapSource(), nil
	case SourceDirty:
		return DirtyHeapSource(), nil
	case SourcePool:
		return PooledSource(), nil
	case SourceMmap:
		return MmapSource(), nil
	}
	return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidOptions, name)
}

type heapSource struct {
	dirty bool
}

// HeapSource returns a source allocating zeroed chunks from the Go heap.
// Release drops nothing by itself, chunks are collected by GC once the Allocator is gone.
func HeapSource() ChunkSource {
	return heapSource{}
}

// DirtyHeapSource is like HeapSource but chunks are not zeroed.
// It's safe since the Allocator always writes the NUL of each string.
func DirtyHeapSource() ChunkSource {
	return heapSource{dirty: true}
}

func (heapSource) Granularity() int { return 0 }

func (s heapSource) Acquire(size int) ([]byte, error) {
	if s.dirty {
		return dirtmake.Bytes(size, size), nil
	}
	return make([]byte, size), nil
}

func (heapSource) Release(buf []byte) error { return nil }

func (s heapSource) String() string {
	if s.dirty {
		return SourceDirty
	}
	return SourceHeap
}

type pooledSource struct{}

// PooledSource returns a source backed by mcache.
// Chunks go back to the size-classed pools on release and are reused by later Allocators.
func PooledSource() ChunkSource {
	return pooledSource{}
}

func (pooledSource) Granularity() int { return 0 }

func (pooledSource) Acquire(size int) ([]byte, error) {
	buf := mcache.Malloc(size)
	clear(buf)
	return buf, nil
}

func (pooledSource) Release(buf []byte) error {
	mcache.Free(buf)
	return nil
}

func (pooledSource) String() string { return SourcePool }
