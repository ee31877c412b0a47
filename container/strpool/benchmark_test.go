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
	"math/rand"
	"runtime"
	"sort"
	"strconv"
	"testing"
)

var lorem = []string{
	"Lorem ipsum dolor sit amet, consectetuer adipiscing elit.",
	"Maecenas porttitor congue massa. Fusce posuere, magna sed",
	"pulvinar ultricies, purus lectus malesuada libero,",
	"sit amet commodo magna eros quis urna.",
	"Nunc viverra imperdiet enim. Fusce est. Vivamus a tellus.",
	"Pellentesque habitant morbi tristique senectus et netus et",
	"malesuada fames ac turpis egestas. Proin pharetra nonummy pede.",
	"Mauris et orci. [*** add more chars to prevent SSO ***]",
}

// shuffledStrings returns n*len(lorem) strings in a fixed random order.
func shuffledStrings(n int) []string {
	ss := make([]string, 0, n*len(lorem))
	for i := 0; i < n; i++ {
		for _, s := range lorem {
			ss = append(ss, s+" (#"+strconv.Itoa(i)+")")
		}
	}
	r := rand.New(rand.NewSource(1980))
	r.Shuffle(len(ss), func(i, j int) { ss[i], ss[j] = ss[j], ss[i] })
	return ss
}

func BenchmarkCreate(b *testing.B) {
	ss := shuffledStrings(10000)
	var size int64
	for _, s := range ss {
		size += int64(len(s))
	}

	b.Run("strpool", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(size)
		for i := 0; i < b.N; i++ {
			a := New()
			cs := make([]CStr, 0, len(ss))
			for _, s := range ss {
				c, _ := a.AllocString(s)
				cs = append(cs, c)
			}
			_ = a.Destroy()
		}
	})

	b.Run("strpool-pooled", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(size)
		for i := 0; i < b.N; i++ {
			a, _ := NewWithOptions(Options{Source: SourcePool})
			cs := make([]CStr, 0, len(ss))
			for _, s := range ss {
				c, _ := a.AllocString(s)
				cs = append(cs, c)
			}
			_ = a.Destroy()
		}
	})

	b.Run("stdstrslice", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(size)
		for i := 0; i < b.N; i++ {
			strs := make([]string, 0, len(ss))
			for _, s := range ss {
				strs = append(strs, string([]byte(s)))
			}
		}
	})
}

func BenchmarkSort(b *testing.B) {
	ss := shuffledStrings(10000)
	a := New()
	defer a.Destroy()
	cs := make([]CStr, 0, len(ss))
	for _, s := range ss {
		c, _ := a.AllocString(s)
		cs = append(cs, c)
	}

	b.Run("strpool", func(b *testing.B) {
		tmp := make([]CStr, len(cs))
		for i := 0; i < b.N; i++ {
			copy(tmp, cs)
			sort.Slice(tmp, func(i, j int) bool { return Compare(tmp[i], tmp[j]) < 0 })
		}
	})

	b.Run("stdstrslice", func(b *testing.B) {
		tmp := make([]string, len(ss))
		for i := 0; i < b.N; i++ {
			copy(tmp, ss)
			sort.Strings(tmp)
		}
	})
}

func BenchmarkStrPoolGC(b *testing.B) {
	ss := shuffledStrings(100000)
	a := New()
	cs := make([]CStr, 0, len(ss))
	for _, s := range ss {
		c, _ := a.AllocString(s)
		cs = append(cs, c)
	}
	ss = nil
	runtime.GC()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		runtime.GC()
	}
	runtime.KeepAlive(cs)
	_ = a.Destroy()
}

func BenchmarkStdStrSliceGC(b *testing.B) {
	ss := shuffledStrings(100000)
	runtime.GC()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		runtime.GC()
	}
	runtime.KeepAlive(ss)
}
