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

// Package strpool implements a bump-pointer string allocator.
//
// Strings are deep-copied into large chunks and handed out as NUL-terminated CStr.
// Allocating is usually just a copy plus a cursor increase. Strings are never freed one by one,
// all chunks are released together by Destroy.
//
// An Allocator is NOT goroutine safe. CStr values can be read from any goroutine
// once returned, since they're never modified or moved.
package strpool

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/cloudwego/strpool/unsafex"
)

// chunk is a block of memory served to strings.
// buf is kept as returned by the ChunkSource, only buf[:size] is used.
type chunk struct {
	buf  []byte
	size int
}

// Stats reports the usage of an Allocator.
type Stats struct {
	Chunks        int // chunks currently owned
	Strings       int // strings allocated
	ReservedBytes int // total size of owned chunks
	UsedBytes     int // bytes taken by strings, NUL included
	Acquired      int // chunks acquired from the source
	Released      int // chunks released to the source
}

// Allocator allocates strings from chunks.
type Allocator struct {
	buf  []byte // usable bytes of the current chunk
	next int    // first free byte in buf
	end  int    // len(buf)

	cur    int // index of the current chunk, -1 before the first allocation
	chunks []chunk

	src          ChunkSource
	unit         int // chunk sizes are multiples of unit
	maxStringLen int
	maxMemory    int

	log   *logrus.Entry
	stats Stats

	destroyed bool
}

// New creates an Allocator with DefaultOptions.
func New() *Allocator {
	a, err := NewWithOptions(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return a
}

// NewWithOptions creates an Allocator with the given options.
func NewWithOptions(opts Options) (*Allocator, error) {
	opts.fillDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	src := opts.ChunkSource
	if src == nil {
		src, _ = SourceByName(opts.Source)
	}
	unit := opts.MinChunkSize
	if g := src.Granularity(); g > 0 {
		var ok bool
		if unit, ok = roundUp(unit, g); !ok {
			return nil, fmt.Errorf("%w: MinChunkSize %d overflows", ErrInvalidOptions, opts.MinChunkSize)
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger
	}
	return &Allocator{
		cur:          -1,
		src:          src,
		unit:         unit,
		maxStringLen: opts.MaxStringLen,
		maxMemory:    opts.MaxMemory,
		log:          logger.WithField("prefix", "strpool"),
	}, nil
}

// AllocRange allocates a copy of src[begin:end] followed by a NUL.
// It panics if the range is invalid.
func (a *Allocator) AllocRange(src []byte, begin, end int) (CStr, error) {
	if begin < 0 || begin > end || end > len(src) {
		panic(errInvalidRange)
	}
	return a.alloc(unsafex.BinaryToString(src[begin:end]))
}

// Alloc allocates a copy of b followed by a NUL.
// NUL bytes inside b are copied as they are.
func (a *Allocator) Alloc(b []byte) (CStr, error) {
	return a.alloc(unsafex.BinaryToString(b))
}

// AllocString allocates a copy of s up to its first NUL byte, or the whole s if it has none.
func (a *Allocator) AllocString(s string) (CStr, error) {
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return a.alloc(s)
}

// AllocCString allocates a copy of the NUL-terminated string at p. It panics if p is nil.
func (a *Allocator) AllocCString(p *byte) (CStr, error) {
	if p == nil {
		panic(errNilSource)
	}
	return a.alloc(unsafex.CString(p))
}

func (a *Allocator) alloc(s string) (CStr, error) {
	if a.destroyed {
		panic(errUseAfterDestroy)
	}
	n := len(s) + 1
	if n > a.maxStringLen {
		return CStr{}, fmt.Errorf("%w: %d bytes requested, limit is %d", ErrAllocationTooLarge, n, a.maxStringLen)
	}
	// fast path, for inline
	if a.next+n <= a.end {
		return a.carve(s), nil
	}
	return a.allocSlow(n, s)
}

// carve copies s to the current chunk. The caller makes sure it fits.
func (a *Allocator) carve(s string) CStr {
	p := a.next
	copy(a.buf[p:], s)
	a.buf[p+len(s)] = 0
	a.next = p + len(s) + 1
	a.stats.Strings++
	a.stats.UsedBytes += len(s) + 1
	return CStr{p: &a.buf[p], n: len(s)}
}

func (a *Allocator) allocSlow(n int, s string) (CStr, error) {
	size, ok := roundUp(n, a.unit)
	if !ok {
		return CStr{}, fmt.Errorf("%w: chunk size overflows for %d bytes", ErrOutOfMemory, n)
	}
	if a.maxMemory > 0 && a.stats.ReservedBytes+size > a.maxMemory {
		return CStr{}, fmt.Errorf("%w: chunk of %d bytes exceeds MaxMemory %d (%d reserved)",
			ErrOutOfMemory, size, a.maxMemory, a.stats.ReservedBytes)
	}
	if err := a.grow(size); err != nil {
		return CStr{}, err
	}
	return a.carve(s), nil
}

// grow acquires a chunk of size bytes and makes it current.
// The Allocator is unchanged if it fails.
func (a *Allocator) grow(size int) error {
	buf, err := a.src.Acquire(size)
	if err != nil {
		return fmt.Errorf("%w: acquire chunk of %d bytes: %w", ErrOutOfMemory, size, err)
	}
	if len(buf) < size {
		return fmt.Errorf("%w: source returned %d bytes, %d requested", ErrOutOfMemory, len(buf), size)
	}
	a.chunks = append(a.chunks, chunk{buf: buf, size: size})
	a.cur = len(a.chunks) - 1
	a.buf = buf[:size]
	a.next = 0
	a.end = size

	a.stats.Chunks++
	a.stats.Acquired++
	a.stats.ReservedBytes += size
	if a.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		a.log.WithFields(logrus.Fields{
			"chunk":  a.cur,
			"size":   size,
			"source": fmt.Sprint(a.src),
		}).Debug("chunk acquired")
	}
	return nil
}

// Destroy releases all chunks. All CStr returned before become invalid,
// and the Allocator MUST NOT be used for allocating any more.
// It's safe to call Destroy more than once.
func (a *Allocator) Destroy() error {
	var result *multierror.Error
	for i := range a.chunks {
		if err := a.src.Release(a.chunks[i].buf); err != nil {
			result = multierror.Append(result, fmt.Errorf("release chunk %d: %w", i, err))
		}
		a.chunks[i] = chunk{}
		a.stats.Released++
	}
	if n := len(a.chunks); n > 0 && a.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		a.log.WithFields(logrus.Fields{
			"chunks": n,
			"size":   a.stats.ReservedBytes,
		}).Debug("chunks released")
	}
	a.chunks = nil
	a.cur = -1
	a.buf = nil
	a.next, a.end = 0, 0
	a.stats.Chunks = 0
	a.stats.ReservedBytes = 0
	a.stats.UsedBytes = 0
	a.destroyed = true
	return result.ErrorOrNil()
}

// Chunks returns the number of chunks owned.
func (a *Allocator) Chunks() int {
	return len(a.chunks)
}

// Available returns the free bytes of the current chunk.
// A string of length Available()-1 can be allocated without acquiring a chunk.
func (a *Allocator) Available() int {
	return a.end - a.next
}

// Stats returns the usage of the Allocator.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// roundUp returns the smallest multiple of unit which is >= n.
func roundUp(n, unit int) (int, bool) {
	if n > math.MaxInt-unit+1 {
		return 0, false
	}
	return (n + unit - 1) / unit * unit, true
}
