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

// BindingCalculator is the abstract per-argument recipe emitter (§4.4). Its
// two concrete variants, UnboxCalculator and BoxCalculator, own a
// StorageCalculator and are duals of each other.
type BindingCalculator interface {
	// Storage returns the allocator backing this calculator, so the facade
	// can drive adjustForVarArgs at the fixed/variadic boundary.
	Storage() *StorageCalculator
	// GetIndirectBindings returns the recipe for the hidden indirect-result
	// pointer prepended to the argument list when the return is in memory.
	GetIndirectBindings() []Binding
	// GetBindings returns the recipe for one argument (or the return
	// value) of the given carrier and layout.
	GetBindings(carrier Carrier, layout MemoryLayout) ([]Binding, error)
}

func classifyFor(platform Platform, storage *StorageCalculator, layout MemoryLayout) (TypeClass, error) {
	if class, ok := platform.ClassifyOverride(layout, storage.forVariadicFunction); ok {
		return class, nil
	}
	return Classify(layout, storage.forVariadicFunction)
}

func structSlices(size int64) int {
	return int((size + slotSize - 1) / slotSize)
}

func sliceLen(size, offset int64) int64 {
	n := size - offset
	if n > slotSize {
		return slotSize
	}
	return n
}
