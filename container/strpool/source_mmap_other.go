//go:build !linux && !darwin

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
	"errors"
	"os"
)

var errMmapNotSupported = errors.New("mmap not supported on this platform")

type mmapSource struct{}

// MmapSource is not supported on this platform, Acquire always fails.
func MmapSource() ChunkSource {
	return mmapSource{}
}

func (mmapSource) Granularity() int { return os.Getpagesize() }

func (mmapSource) Acquire(size int) ([]byte, error) { return nil, errMmapNotSupported }

func (mmapSource) Release(buf []byte) error { return errMmapNotSupported }

func (mmapSource) String() string { return SourceMmap }
