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

// ClassificationError occurs when a MemoryLayout does not fall into one of
// the six recognized TypeClass values. Per the engine's contract this is the
// only error the classifier itself raises; every other layout problem is
// the caller's responsibility.
type ClassificationError struct {
	Layout MemoryLayout
	Reason string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("abi: cannot classify layout %s: %s", e.Layout, e.Reason)
}

// Invariant is paniced by internal composition checks (a stack slot size
// that doesn't fit 16 bits or exceeds abiopts.MaxStackArgBytes, a
// struct-class carrier that isn't a buffer carrier). Return values are not
// checked for stack placement: a return-side calculator whose output bank
// is exhausted spills to the stack just as an argument calculator does.
// It is recovered at
// the single GetBindings boundary in the facade and surfaced as an error;
// it never occurs for well-formed input, and signals either a malformed
// carrier/layout pairing from the caller or a composition bug in the engine.
type Invariant struct {
	Msg string
}

func (i Invariant) Error() string { return "abi: invariant violated: " + i.Msg }

func requireInvariant(cond bool, msg string) {
	if !cond {
		panic(Invariant{Msg: msg})
	}
}
