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

// Package abiopts holds package-level tunables that affect every
// CallArranger, the way frugal's internal/opts holds MaxInlineDepth and
// MaxInlineILSize.
package abiopts

import (
	"os"
	"strconv"
)

const _DefaultMaxStackArgBytes = 0xff00 // comfortably under the 16-bit stack-slot-size ceiling

// MaxStackArgBytes bounds how many bytes a single stack-spilled argument
// may occupy before the storage calculator treats it as a composition
// error, rather than letting it run all the way to the hard 65535-byte
// invariant in internal/abi's VMStorage. Overridable with
// ABI64_MAX_STACK_ARG_BYTES.
var MaxStackArgBytes = parseOrDefault("ABI64_MAX_STACK_ARG_BYTES", _DefaultMaxStackArgBytes, 8)

func parseOrDefault(key string, def int, min int) int {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseUint(env, 0, 64); err != nil {
		panic("abi64: invalid value for " + key)
	} else if ret := int(val); ret <= min {
		panic("abi64: value too small for " + key)
	} else {
		return ret
	}
}
