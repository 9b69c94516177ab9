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

// CallingSequence is the sealed plan GetBindings produces: one recipe per
// argument, plus the return value's recipe and whether argument 0 is a
// synthetic indirect-result pointer.
type CallingSequence = abi.CallingSequence

// ArgumentBinding pairs one argument's recipe with the carrier/layout it
// was computed from.
type ArgumentBinding = abi.ArgumentBinding

// Binding is a single step of a recipe: one operation out of the fixed
// alphabet (dup, vmLoad, vmStore, bufferLoad, bufferStore, allocate, copy,
// unboxAddress, boxAddress, boxAddressRaw), parameterized by the storage
// location and primitive width it acts on.
type Binding = abi.Binding

// CallArranger is the per-platform facade (§4.5): given a MethodType and a
// FunctionDescriptor it produces a CallingSequence for either a downcall
// (managed code calling into C) or an upcall (C calling into managed
// code). A CallArranger is stateless and reentrant; the three package
// vars below are the only instances most callers need.
type CallArranger struct {
	inner *abi.CallArranger
}

func newCallArranger(p abi.Platform) *CallArranger {
	return &CallArranger{inner: abi.NewCallArranger(p)}
}

// LINUX, MACOS, and WINDOWS are the three recognized AArch64 platform
// arrangers, one per the policy table in §4.3.
var (
	LINUX   = newCallArranger(abi.LINUX)
	MACOS   = newCallArranger(abi.MACOS)
	WINDOWS = newCallArranger(abi.WINDOWS)
)

func toArguments(mt *MethodType, fd *FunctionDescriptor) ([]abi.Argument, error) {
	if len(mt.Args) != len(fd.Args) {
		return nil, &ArityError{CarrierCount: len(mt.Args), LayoutCount: len(fd.Args)}
	}
	args := make([]abi.Argument, len(mt.Args))
	for i := range mt.Args {
		args[i] = abi.Argument{Carrier: mt.Args[i], Layout: fd.Args[i]}
	}
	return args, nil
}

// GetBindings arranges a downcall: the caller is managed code, the callee
// follows the platform's native C calling convention. forUpcall reverses
// the direction for the case where native code is calling back into
// managed code. returnInMemory reports whether the return value is passed
// via the indirect-result convention (x8) rather than in registers.
func (a *CallArranger) GetBindings(mt *MethodType, fd *FunctionDescriptor, forUpcall bool, opts *LinkerOptions) (seq *CallingSequence, returnInMemory bool, err error) {
	args, err := toArguments(mt, fd)
	if err != nil {
		return nil, false, err
	}

	hasReturn := !mt.Void
	var returnCarrier Carrier
	var returnLayout MemoryLayout
	if hasReturn {
		returnCarrier = mt.Return
		returnLayout = fd.Return
	}

	return a.inner.GetBindings(args, returnCarrier, returnLayout, hasReturn, forUpcall, opts)
}

// DowncallHandle is the opaque product of ArrangeDowncall: a trampoline
// linker's representation of "call this native function the way this
// CallingSequence describes." This package only computes the recipe; it
// does not generate or execute machine code, so a DowncallHandle carries
// nothing executable.
type DowncallHandle struct {
	Sequence       *CallingSequence
	ReturnInMemory bool
	Target         TargetHandle
}

// TargetHandle identifies the native entry point a DowncallHandle or
// UpcallStub binds to. It is intentionally opaque here: resolving a
// TargetHandle to an executable address is a linker/loader concern outside
// this package (see SPEC_FULL.md's named external collaborators).
type TargetHandle struct {
	Name string
}

// UpcallStub is the opaque product of ArrangeUpcall: the managed-side
// entry point a trampoline linker generates so native code can call back
// into managed code following this CallingSequence.
type UpcallStub struct {
	Sequence       *CallingSequence
	ReturnInMemory bool
}

// Scope models the lifetime boundary within which a DowncallHandle's or
// UpcallStub's memory-segment allocations (stack spills, boxed buffers)
// remain valid. This package never allocates native memory itself; Scope
// exists only so callers can thread a lifetime handle through
// ArrangeDowncall/ArrangeUpcall without this package needing to know what
// backs it.
type Scope struct {
	Name string
}

// ArrangeDowncall arranges a call from managed code into the native
// function identified by target, valid for the duration of scope.
func (a *CallArranger) ArrangeDowncall(mt *MethodType, fd *FunctionDescriptor, target TargetHandle, scope Scope, opts *LinkerOptions) (*DowncallHandle, error) {
	seq, returnInMemory, err := a.GetBindings(mt, fd, false, opts)
	if err != nil {
		return nil, err
	}
	return &DowncallHandle{Sequence: seq, ReturnInMemory: returnInMemory, Target: target}, nil
}

// ArrangeUpcall arranges a call from native code into managed code, valid
// for the duration of scope.
func (a *CallArranger) ArrangeUpcall(mt *MethodType, fd *FunctionDescriptor, scope Scope, opts *LinkerOptions) (*UpcallStub, error) {
	seq, returnInMemory, err := a.GetBindings(mt, fd, true, opts)
	if err != nil {
		return nil, err
	}
	return &UpcallStub{Sequence: seq, ReturnInMemory: returnInMemory}, nil
}
