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

package unsafex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryToString(t *testing.T) {
	b := []byte("hello")
	s := BinaryToString(b)
	assert.Equal(t, string(b), s)
	b[0] = 'x'
	assert.Equal(t, "xello", s)
}

func TestStringToBinary(t *testing.T) {
	x := []byte("hello")
	// doesn't use string literal, or `b[0] = 'x'` will panic coz addr is readonly
	s := string(x)
	b := StringToBinary(s)
	assert.Equal(t, s, string(b))
}

func TestStrlen(t *testing.T) {
	b := []byte("hello\x00world\x00")
	assert.Equal(t, 5, Strlen(&b[0]))
	assert.Equal(t, 5, Strlen(&b[6]))
	assert.Equal(t, 0, Strlen(&b[5]))
}

func TestCString(t *testing.T) {
	b := []byte("abc\x00def")
	assert.Equal(t, "abc", CString(&b[0]))
	assert.Equal(t, "", CString(nil))

	b[1] = 'x'
	assert.Equal(t, "axc", CString(&b[0]))
}

func BenchmarkStrlen(b *testing.B) {
	buf := []byte("Lorem ipsum dolor sit amet, consectetuer adipiscing elit.\x00")
	b.SetBytes(int64(len(buf)))
	for i := 0; i < b.N; i++ {
		_ = Strlen(&buf[0])
	}
}
