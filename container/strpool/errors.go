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

import "errors"

var (
	// ErrAllocationTooLarge is returned when a single string, including its NUL,
	// is longer than Options.MaxStringLen. The Allocator is left unchanged.
	ErrAllocationTooLarge = errors.New("strpool: allocation too large")

	// ErrOutOfMemory is returned when a new chunk cannot be acquired,
	// either because the ChunkSource failed or Options.MaxMemory would be exceeded.
	// Strings allocated before remain valid and the Allocator stays usable.
	ErrOutOfMemory = errors.New("strpool: out of memory")

	// ErrInvalidOptions is returned by NewWithOptions and OptionsFromEnv.
	ErrInvalidOptions = errors.New("strpool: invalid options")
)

const (
	errUseAfterDestroy = "strpool: use after Destroy()"
	errInvalidRange    = "strpool: invalid range"
	errNilSource       = "strpool: nil source pointer"
)
