// Copyright 2024 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package strstore

import (
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/cloudwego/strpool/container/strpool"
)

// StrStore is an append-only list of strings kept in a strpool.Allocator.
// Strings are copied into a few large chunks, and read back by index without copy.
type StrStore struct {
	pool *strpool.Allocator
	opts strpool.Options
	strs []strpool.CStr
}

// New creates a StrStore instance with strpool.DefaultOptions.
func New() *StrStore {
	s, err := NewWithOptions(strpool.DefaultOptions())
	if err != nil {
		panic(err)
	}
	return s
}

// NewWithOptions creates a StrStore whose strings are allocated with the given options.
func NewWithOptions(opts strpool.Options) (*StrStore, error) {
	pool, err := strpool.NewWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return &StrStore{pool: pool, opts: opts}, nil
}

// NewFromSlice constructs a StrStore with the input string slice and returns the StrStore and indexes for the following reads.
// It panics if any string in the slice can not be allocated.
func NewFromSlice(ss []string) (*StrStore, []int) {
	st := New()
	idxes, err := st.Load(ss)
	if err != nil {
		panic(err)
	}
	return st, idxes
}

// Load resets the StrStore and set from input string slices.
// Strings loaded before are released. If releasing fails, the StrStore is still reset
// and the error is returned without loading ss.
func (s *StrStore) Load(ss []string) ([]int, error) {
	if err := s.reset(); err != nil {
		return nil, err
	}
	if cap(s.strs) < len(ss) {
		s.strs = make([]strpool.CStr, 0, len(ss))
	}
	idxes := make([]int, len(ss))
	for i := range ss {
		idx, err := s.Append(ss[i])
		if err != nil {
			return nil, err
		}
		idxes[i] = idx
	}
	return idxes, nil
}

// reset drops all strings and starts over with a new pool.
// Strings are dropped even if releasing the old chunks fails.
func (s *StrStore) reset() error {
	if len(s.strs) == 0 && s.pool.Chunks() == 0 {
		return nil
	}
	var result *multierror.Error
	if err := s.pool.Destroy(); err != nil {
		result = multierror.Append(result, err)
	}
	clear(s.strs)
	s.strs = s.strs[:0]
	pool, err := strpool.NewWithOptions(s.opts)
	if err != nil {
		return multierror.Append(result, err)
	}
	s.pool = pool
	return result.ErrorOrNil()
}

// Append copies str into the store and returns its index.
// Like strpool.Allocator.AllocString, str is cut at its first NUL byte.
func (s *StrStore) Append(str string) (int, error) {
	cs, err := s.pool.AllocString(str)
	if err != nil {
		return -1, err
	}
	s.strs = append(s.strs, cs)
	return len(s.strs) - 1, nil
}

// Get gets the string with the idx.
// It returns empty string if the no string can be found with the input idx
func (s *StrStore) Get(idx int) string {
	if idx < 0 || idx >= len(s.strs) {
		return ""
	}
	return s.strs[idx].String()
}

// CStr returns the NUL-terminated string with the idx.
func (s *StrStore) CStr(idx int) (strpool.CStr, bool) {
	if idx < 0 || idx >= len(s.strs) {
		return strpool.CStr{}, false
	}
	return s.strs[idx], true
}

// Len returns the number of strings.
func (s *StrStore) Len() int {
	return len(s.strs)
}

// Sort sorts strings in byte order. Indexes returned before are invalidated.
func (s *StrStore) Sort() {
	sort.Slice(s.strs, func(i, j int) bool {
		return strpool.Compare(s.strs[i], s.strs[j]) < 0
	})
}

// Stats returns the usage of the underlying strpool.Allocator.
func (s *StrStore) Stats() strpool.Stats {
	return s.pool.Stats()
}

// Close releases all strings. The StrStore MUST NOT be used after Close.
func (s *StrStore) Close() error {
	s.strs = nil
	return s.pool.Destroy()
}
