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

import "testing"

func TestCallArranger_SimpleIntegerCall(t *testing.T) {
	arranger := NewCallArranger(LINUX)

	args := []Argument{
		{Carrier: IntegerCarrier, Layout: Int32Layout},
		{Carrier: IntegerCarrier, Layout: Int32Layout},
	}

	seq, returnInMemory, err := arranger.GetBindings(args, IntegerCarrier, Int32Layout, true, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if returnInMemory {
		t.Fatal("a scalar return should never be in-memory")
	}
	if len(seq.Arguments()) != 2 {
		t.Fatalf("len(Arguments()) = %d, want 2", len(seq.Arguments()))
	}
	if _, ok := seq.Return(); !ok {
		t.Fatal("Return() should report hasReturn=true")
	}
	if seq.HasIndirectResult() {
		t.Fatal("HasIndirectResult() should be false")
	}
}

func TestCallArranger_LargeStructReturnUsesIndirectResult(t *testing.T) {
	arranger := NewCallArranger(LINUX)
	huge := NewStructLayout("huge", Int64Layout, Int64Layout, Int64Layout)

	seq, returnInMemory, err := arranger.GetBindings(nil, BufferCarrier, huge, true, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !returnInMemory {
		t.Fatal("a >16 byte struct return should be in-memory")
	}
	if !seq.HasIndirectResult() {
		t.Fatal("HasIndirectResult() should be true")
	}
	if len(seq.Arguments()) != 1 {
		t.Fatalf("len(Arguments()) = %d, want 1 (the synthetic indirect-result pointer)", len(seq.Arguments()))
	}
	if _, hasReturn := seq.Return(); hasReturn {
		t.Fatal("Return() should report hasReturn=false when the result is indirect")
	}
}

func TestCallArranger_VoidReturn(t *testing.T) {
	arranger := NewCallArranger(LINUX)
	args := []Argument{{Carrier: IntegerCarrier, Layout: Int64Layout}}

	seq, returnInMemory, err := arranger.GetBindings(args, 0, nil, false, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if returnInMemory {
		t.Fatal("void return should never be in-memory")
	}
	if _, hasReturn := seq.Return(); hasReturn {
		t.Fatal("Return() should report hasReturn=false for a void function")
	}
}

func TestCallArranger_VariadicBoundaryOnMacOSClosesRegisters(t *testing.T) {
	arranger := NewCallArranger(MACOS)

	args := make([]Argument, 0, 10)
	for i := 0; i < 9; i++ {
		args = append(args, Argument{Carrier: IntegerCarrier, Layout: Int64Layout})
	}

	opts := &LinkerOptions{IsVariadicFunction: true, FirstVariadicArgIndex: 8}

	seq, _, err := arranger.GetBindings(args, 0, nil, false, false, opts)
	if err != nil {
		t.Fatal(err)
	}

	bindings := seq.Arguments()[8].Bindings
	if bindings[0].Storage.Kind != STACK_KIND {
		t.Fatalf("macOS variadic argument 8 should spill to the stack, got %v", bindings[0].Storage.Kind)
	}
}

func TestCallArranger_VariadicBoundaryOnWindowsKeepsUsingRegisters(t *testing.T) {
	arranger := NewCallArranger(WINDOWS)

	args := []Argument{
		{Carrier: IntegerCarrier, Layout: Int64Layout},
		{Carrier: FloatCarrier, Layout: Float64Layout},
	}

	opts := &LinkerOptions{IsVariadicFunction: true, FirstVariadicArgIndex: 1}

	seq, _, err := arranger.GetBindings(args, 0, nil, false, false, opts)
	if err != nil {
		t.Fatal(err)
	}

	variadicFloat := seq.Arguments()[1].Bindings
	if variadicFloat[0].Storage.Kind != INTEGER_KIND {
		t.Fatalf("Windows variadic float should route to an integer register, got %v", variadicFloat[0].Storage.Kind)
	}
}

func TestCallArranger_UpcallIgnoresVariadicOptions(t *testing.T) {
	arranger := NewCallArranger(WINDOWS)

	args := []Argument{
		{Carrier: IntegerCarrier, Layout: Int64Layout},
		{Carrier: FloatCarrier, Layout: Float64Layout},
	}

	// Box (the upcall argument calculator) must never see the variadic
	// boundary: forUpcall=true with the same options that reroute a
	// downcall's variadic float to the integer bank should leave this
	// argument on the vector bank instead.
	opts := &LinkerOptions{IsVariadicFunction: true, FirstVariadicArgIndex: 1}

	seq, _, err := arranger.GetBindings(args, 0, nil, false, true, opts)
	if err != nil {
		t.Fatal(err)
	}

	variadicFloat := seq.Arguments()[1].Bindings
	if variadicFloat[0].Storage.Kind != VECTOR_KIND {
		t.Fatalf("an upcall argument must not be rerouted by variadic options, got %v", variadicFloat[0].Storage.Kind)
	}
}

func TestCallArranger_UpcallReversesDirection(t *testing.T) {
	arranger := NewCallArranger(LINUX)
	args := []Argument{{Carrier: IntegerCarrier, Layout: Int32Layout}}

	seq, _, err := arranger.GetBindings(args, IntegerCarrier, Int32Layout, true, true, nil)
	if err != nil {
		t.Fatal(err)
	}

	if seq.Arguments()[0].Bindings[0].Op != OpVMLoad {
		t.Fatalf("an upcall argument should be boxed (vmLoad), got %v", seq.Arguments()[0].Bindings[0].Op)
	}
	ret, _ := seq.Return()
	if ret.Bindings[0].Op != OpVMStore {
		t.Fatalf("an upcall return should be unboxed (vmStore), got %v", ret.Bindings[0].Op)
	}
}

func TestCallArranger_InvariantViolationBecomesError(t *testing.T) {
	arranger := NewCallArranger(LINUX)
	s := NewStructLayout("small", Int32Layout, Int32Layout)

	// A struct-class argument carried by an integer carrier violates the
	// "struct classes must use a buffer carrier" invariant.
	args := []Argument{{Carrier: IntegerCarrier, Layout: s}}

	_, _, err := arranger.GetBindings(args, 0, nil, false, false, nil)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if _, ok := err.(Invariant); !ok {
		t.Fatalf("err = %T, want Invariant", err)
	}
}

func TestCallArranger_ClassificationErrorPropagates(t *testing.T) {
	arranger := NewCallArranger(LINUX)

	_, _, err := arranger.GetBindings(nil, BufferCarrier, unclassifiableLayout{}, true, false, nil)
	if err == nil {
		t.Fatal("expected a ClassificationError, got nil")
	}
	if _, ok := err.(*ClassificationError); !ok {
		t.Fatalf("err = %T, want *ClassificationError", err)
	}
}
