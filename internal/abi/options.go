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

// LinkerOptions carries the two recognized linker options from §3:
// whether the function is variadic, and the index of its first variadic
// argument.
type LinkerOptions struct {
	IsVariadicFunction    bool
	FirstVariadicArgIndex int
}

// IsVarargsIndex is the membership test the facade uses to decide when to
// call adjustForVarArgs.
func (o *LinkerOptions) IsVarargsIndex(i int) bool {
	return o != nil && o.IsVariadicFunction && i >= o.FirstVariadicArgIndex
}
