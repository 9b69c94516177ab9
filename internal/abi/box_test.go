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

import (
	"math"
	"testing"
)

func TestBoxCalculator_Integer(t *testing.T) {
	x := NewBoxCalculator(LINUX, false)

	bindings, err := x.GetBindings(IntegerCarrier, Int32Layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(bindings) != 1 || bindings[0].Op != OpVMLoad {
		t.Fatalf("bindings = %v, want a single vmLoad", bindings)
	}
}

func TestBoxCalculator_AlwaysIgnoresVariadic(t *testing.T) {
	x := NewBoxCalculator(WINDOWS, true)
	if x.Storage().forVariadicFunction {
		t.Fatal("Box must construct its StorageCalculator with forVariadicFunction=false")
	}
}

func TestBoxCalculator_StructRegister_DupEveryIteration(t *testing.T) {
	x := NewBoxCalculator(LINUX, false)
	s := NewStructLayout("two-slots", Int64Layout, Int64Layout)

	bindings, err := x.GetBindings(BufferCarrier, s)
	if err != nil {
		t.Fatal(err)
	}

	dups := countOp(bindings, OpDup)
	if dups != 2 {
		t.Fatalf("Box should dup on every register slice (2 slices), got %d dups in %v", dups, bindings)
	}
	if bindings[0].Op != OpAllocate {
		t.Fatalf("first binding should be allocate, got %v", bindings[0].Op)
	}
}

func TestBoxCalculator_HFA_MacOSStackPackingUsesIntegerPrim(t *testing.T) {
	x := NewBoxCalculator(MACOS, true)
	x.Storage().regAlloc(VECTOR_KIND, 8) // exhaust the vector bank

	hfa := NewStructLayout("vec2", Float64Layout, Float64Layout)
	bindings, err := x.GetBindings(BufferCarrier, hfa)
	if err != nil {
		t.Fatal(err)
	}

	loads := 0
	for _, b := range bindings {
		if b.Op == OpVMLoad {
			if b.Storage.Kind != STACK_KIND {
				t.Fatalf("expected stack-packed storage once the vector bank is exhausted, got %v", b.Storage.Kind)
			}
			if b.Prim.Float {
				t.Fatal("a stack-placed HFA leaf should use the integer prim, not float")
			}
			loads++
		}
	}
	if loads != 2 {
		t.Fatalf("expected 2 vmLoad ops for a 2-leaf HFA, got %d", loads)
	}
}

func TestBoxCalculator_StructReference(t *testing.T) {
	x := NewBoxCalculator(LINUX, false)
	s := NewStructLayout("huge", Int64Layout, Int64Layout, Int64Layout)

	bindings, err := x.GetBindings(BufferCarrier, s)
	if err != nil {
		t.Fatal(err)
	}

	if len(bindings) != 2 || bindings[0].Op != OpVMLoad || bindings[1].Op != OpBoxAddress {
		t.Fatalf("bindings = %v, want [vmLoad, boxAddress]", bindings)
	}
}

func TestBoxCalculator_IndirectBindingsUseMaxBound(t *testing.T) {
	x := NewBoxCalculator(LINUX, false)
	bindings := x.GetIndirectBindings()

	if len(bindings) != 2 || bindings[1].Op != OpBoxAddressRaw {
		t.Fatalf("bindings = %v, want [vmLoad, boxAddressRaw]", bindings)
	}
	if bindings[1].Size != math.MaxInt64 {
		t.Fatalf("indirect boxAddressRaw size = %d, want math.MaxInt64", bindings[1].Size)
	}
}

func TestBoxCalculator_PointerUsesDeclaredPointeeSize(t *testing.T) {
	x := NewBoxCalculator(LINUX, false)
	p := &ScalarLayout{Kind: ScalarPointer, ByteSize: 8, ByteAlign: 8, PointeeSize: 40}

	bindings, err := x.GetBindings(AddressCarrier, p)
	if err != nil {
		t.Fatal(err)
	}
	if bindings[1].Size != 40 {
		t.Fatalf("boxAddressRaw size = %d, want 40", bindings[1].Size)
	}
}

func TestUnboxAndBox_StackSpillAreMirrorImages(t *testing.T) {
	// Exhaust both register banks so both calculators fall all the way
	// through to the generic stack-spill path, and check the op sequences
	// are dual (same ops, reversed data direction, dup placement differs).
	u := NewUnboxCalculator(LINUX, true, false)
	u.Storage().regAlloc(INTEGER_KIND, 8)

	x := NewBoxCalculator(LINUX, false)
	x.Storage().regAlloc(INTEGER_KIND, 8)

	s := NewStructLayout("spilled", Int64Layout, Int64Layout)

	unboxed, err := u.GetBindings(BufferCarrier, s)
	if err != nil {
		t.Fatal(err)
	}
	boxed, err := x.GetBindings(BufferCarrier, s)
	if err != nil {
		t.Fatal(err)
	}

	if countOp(unboxed, OpDup) != 1 {
		t.Fatalf("unbox spill should dup once (skip the final chunk), got %d", countOp(unboxed, OpDup))
	}
	if countOp(boxed, OpDup) != 2 {
		t.Fatalf("box spill should dup on every chunk, got %d", countOp(boxed, OpDup))
	}
	if countOp(boxed, OpAllocate) != 1 {
		t.Fatalf("box spill should allocate the destination buffer exactly once, got %d", countOp(boxed, OpAllocate))
	}
}
