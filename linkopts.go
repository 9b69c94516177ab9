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

package abi64

import "github.com/cloudwego/abi64/internal/abi"

// LinkerOptions is re-exported so callers can build one without reaching
// into internal/abi directly.
type LinkerOptions = abi.LinkerOptions

// Option configures a LinkerOptions the way frugal's jit options do: small
// functional setters composed over a zero value.
type Option func(*LinkerOptions)

// WithVariadic marks the described function as variadic, with
// firstVariadicArgIndex as the lowest argument index subject to the
// platform's variadic-boundary rules (§4.4).
func WithVariadic(firstVariadicArgIndex int) Option {
	return func(o *LinkerOptions) {
		o.IsVariadicFunction = true
		o.FirstVariadicArgIndex = firstVariadicArgIndex
	}
}

// WithFixedArity marks the described function as non-variadic. It is the
// default state of a zero-value LinkerOptions, and exists only so callers
// building an Option slice programmatically have an explicit way to
// express "not variadic" instead of simply omitting WithVariadic.
func WithFixedArity() Option {
	return func(o *LinkerOptions) {
		o.IsVariadicFunction = false
		o.FirstVariadicArgIndex = 0
	}
}

// NewLinkerOptions builds a LinkerOptions from zero or more Options. A nil
// *LinkerOptions (no options given elsewhere in this package) is always
// treated as "not variadic", so callers may also just pass nil.
func NewLinkerOptions(opts ...Option) *LinkerOptions {
	o := &LinkerOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
