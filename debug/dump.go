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

package debug

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/cloudwego/abi64/internal/abi"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump renders a CallingSequence's argument and return recipes in full,
// for engineers chasing a miscompiled trampoline. It is deliberately
// verbose; callers who only want a one-line summary should walk
// seq.Arguments() themselves.
func Dump(seq *abi.CallingSequence) string {
	return dumpConfig.Sdump(seq)
}

// DumpBindings renders one recipe (the Bindings slice of an
// ArgumentBinding) on its own, for spot-checking a single argument without
// the surrounding sequence.
func DumpBindings(bindings []abi.Binding) string {
	return dumpConfig.Sdump(bindings)
}
