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

package abi

import "fmt"

// Carrier is the managed-side type that a MethodType uses to represent one
// argument or return value: an integer word, a floating-point word, an
// opaque buffer (for aggregates), or an address (for pointers).
type Carrier uint8

const (
	IntegerCarrier Carrier = iota
	FloatCarrier
	BufferCarrier
	AddressCarrier
)

func (c Carrier) String() string {
	switch c {
	case IntegerCarrier:
		return "integer"
	case FloatCarrier:
		return "float"
	case BufferCarrier:
		return "buffer"
	case AddressCarrier:
		return "address"
	default:
		return fmt.Sprintf("Carrier(%d)", uint8(c))
	}
}

// requireBufferCarrier enforces the "struct-class carriers must be buffer
// carriers" assertion named in the spec's error-handling section.
func requireBufferCarrier(carrier Carrier, class TypeClass) {
	requireInvariant(carrier == BufferCarrier, fmt.Sprintf("%s carrier must be a buffer carrier, got %s", class, carrier))
}
