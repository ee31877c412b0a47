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
	"io"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMinChunkSize is the default minimum chunk size (512KB).
	DefaultMinChunkSize = 512 << 10

	// DefaultMaxStringLen is the default limit of a single string, NUL included (1MB).
	DefaultMaxStringLen = 1 << 20

	// minChunkSizeLimit is the smallest chunk able to hold a 1 byte string.
	minChunkSizeLimit = 2
)

// Options configures an Allocator. Zero fields take the defaults.
type Options struct {
	// MinChunkSize is the minimum usable size of a chunk in bytes.
	// Chunks should be comfortably large so that acquiring one is rare.
	MinChunkSize int `envconfig:"MIN_CHUNK_SIZE"`

	// MaxStringLen limits the size of a single string, NUL included.
	MaxStringLen int `envconfig:"MAX_STRING_LEN"`

	// MaxMemory caps the total bytes of all chunks. 0 means no limit.
	MaxMemory int `envconfig:"MAX_MEMORY"`

	// Source names the chunk source, see SourceByName. Ignored if ChunkSource is set.
	Source string `envconfig:"SOURCE"`

	ChunkSource ChunkSource    `ignored:"true"`
	Logger      *logrus.Logger `ignored:"true"`
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		MinChunkSize: DefaultMinChunkSize,
		MaxStringLen: DefaultMaxStringLen,
		Source:       SourceHeap,
	}
}

// OptionsFromEnv returns DefaultOptions overridden by environment variables,
// e.g. with prefix "STRPOOL": STRPOOL_MIN_CHUNK_SIZE, STRPOOL_MAX_STRING_LEN,
// STRPOOL_MAX_MEMORY and STRPOOL_SOURCE.
func OptionsFromEnv(prefix string) (Options, error) {
	opts := DefaultOptions()
	if err := envconfig.Process(prefix, &opts); err != nil {
		return opts, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	opts.fillDefaults()
	return opts, opts.validate()
}

func (o *Options) fillDefaults() {
	if o.MinChunkSize == 0 {
		o.MinChunkSize = DefaultMinChunkSize
	}
	if o.MaxStringLen == 0 {
		o.MaxStringLen = DefaultMaxStringLen
	}
	if o.Source == "" {
		o.Source = SourceHeap
	}
}

func (o Options) validate() error {
	if o.MinChunkSize < minChunkSizeLimit {
		return fmt.Errorf("%w: MinChunkSize must be >= %d, got %d", ErrInvalidOptions, minChunkSizeLimit, o.MinChunkSize)
	}
	if o.MaxStringLen < 1 {
		return fmt.Errorf("%w: MaxStringLen must be >= 1, got %d", ErrInvalidOptions, o.MaxStringLen)
	}
	if o.MaxMemory < 0 {
		return fmt.Errorf("%w: MaxMemory must be >= 0, got %d", ErrInvalidOptions, o.MaxMemory)
	}
	if o.ChunkSource == nil {
		if _, err := SourceByName(o.Source); err != nil {
			return err
		}
	}
	return nil
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	l.Level = logrus.WarnLevel
	return l
}()
