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

import (
	"fmt"

	"github.com/cloudwego/abi64/internal/abi"
)

// ClassificationError and Invariant occur when a layout falls outside the
// engine's six-class closed set, or when an internal composition check
// fails. Together with ArityError below they are the only errors this
// package itself raises (§7); every other layout problem is upstream, and
// trampoline/stub failures are downstream.
type (
	ClassificationError = abi.ClassificationError
	Invariant           = abi.Invariant
)

// ArityError occurs when a MethodType's carrier list and a
// FunctionDescriptor's layout list disagree in length.
type ArityError struct {
	CarrierCount int
	LayoutCount  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("abi64: method type has %d argument carriers but descriptor has %d argument layouts", e.CarrierCount, e.LayoutCount)
}
