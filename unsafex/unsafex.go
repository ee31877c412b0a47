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

// Package unsafex holds zero-copy helpers shared by the string pool packages.
package unsafex

import "unsafe"

// BinaryToString converts []byte to string without copy.
// The caller must not modify b while the string is in use.
func BinaryToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBinary converts string to []byte without copy.
// The returned bytes MUST NOT be written.
func StringToBinary(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Strlen returns the number of bytes before the first NUL byte at p.
// p must point to a NUL-terminated buffer.
func Strlen(p *byte) int {
	n := 0
	// byte by byte, the NUL may be the last byte of a mapping
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return n
}

// CString returns a string view of the NUL-terminated buffer at p, without copy.
// It returns empty string if p is nil.
func CString(p *byte) string {
	if p == nil {
		return ""
	}
	return unsafe.String(p, Strlen(p))
}
