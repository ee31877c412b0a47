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
	"strings"
	"unsafe"
)

// CStr is a NUL-terminated string owned by an Allocator.
// It's valid until Allocator.Destroy and MUST NOT be modified.
type CStr struct {
	p *byte
	n int // excluding NUL
}

// Len returns the length of the string, excluding the NUL.
func (s CStr) Len() int {
	return s.n
}

// IsZero reports whether s is the zero CStr returned along with errors.
func (s CStr) IsZero() bool {
	return s.p == nil
}

// Ptr returns the pointer to the first byte. The byte at offset Len() is always 0.
func (s CStr) Ptr() *byte {
	return s.p
}

// String returns the string without copy.
func (s CStr) String() string {
	if s.p == nil {
		return ""
	}
	return unsafe.String(s.p, s.n)
}

// Bytes returns the bytes of the string without copy, excluding the NUL.
// The returned bytes MUST NOT be written.
func (s CStr) Bytes() []byte {
	if s.p == nil {
		return nil
	}
	return unsafe.Slice(s.p, s.n)
}

// Compare returns an integer comparing a and b in byte order over Len() bytes.
// It's the same as strcmp unless a string holds NUL bytes copied by Alloc or AllocRange.
func Compare(a, b CStr) int {
	return strings.Compare(a.String(), b.String())
}
