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

import "sync/atomic"

// Counters, incremented once per completed GetBindings call. Exported as
// plain atomics rather than through a setter so the debug package can read
// them without this package needing to know debug exists.
var (
	SequencesBuilt     int64
	IndirectResults    int64
	CompositionFailure int64
)

// CallArranger is the per-platform facade (§4.5). It is reentrant and
// stateless: all per-call state lives in the calculators GetBindings
// creates fresh on every invocation, so the three package-level instances
// (LINUX, MACOS, WINDOWS, see policy.go) are safe to share across
// goroutines.
type CallArranger struct {
	Platform Platform
}

// NewCallArranger wraps a Platform policy in a CallArranger.
func NewCallArranger(p Platform) *CallArranger {
	return &CallArranger{Platform: p}
}

// Argument is one entry of a FunctionDescriptor's argument list, paired
// with the carrier class its MethodType slot uses.
type Argument struct {
	Carrier Carrier
	Layout  MemoryLayout
}

// GetBindings implements §4.5's algorithm. forUpcall selects the direction
// (downcall: Unbox args / Box return; upcall: Box args / Unbox return).
// returnCarrier/returnLayout are ignored when hasReturn is false.
//
// Any internal composition invariant violation (Invariant, see errors.go)
// is recovered here and returned as an error instead of propagating as a
// panic, per §7.
func (a *CallArranger) GetBindings(args []Argument, returnCarrier Carrier, returnLayout MemoryLayout, hasReturn bool, forUpcall bool, options *LinkerOptions) (seq *CallingSequence, returnInMemory bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if inv, ok := r.(Invariant); ok {
				err = inv
				seq = nil
				atomic.AddInt64(&CompositionFailure, 1)
				return
			}
			panic(r)
		}
	}()

	seq, returnInMemory, err = a.getBindings(args, returnCarrier, returnLayout, hasReturn, forUpcall, options)
	if err != nil {
		atomic.AddInt64(&CompositionFailure, 1)
		return
	}

	atomic.AddInt64(&SequencesBuilt, 1)
	if returnInMemory {
		atomic.AddInt64(&IndirectResults, 1)
	}
	return
}

func (a *CallArranger) getBindings(args []Argument, returnCarrier Carrier, returnLayout MemoryLayout, hasReturn bool, forUpcall bool, options *LinkerOptions) (*CallingSequence, bool, error) {
	builder := NewCallingSequenceBuilder()
	variadic := options != nil && options.IsVariadicFunction

	var argCalc, retCalc BindingCalculator

	if forUpcall {
		argCalc = NewBoxCalculator(a.Platform, true)
		retCalc = NewUnboxCalculator(a.Platform, false, false)
	} else {
		argCalc = NewUnboxCalculator(a.Platform, true, variadic)
		retCalc = NewBoxCalculator(a.Platform, false)
	}

	returnInMemory := false

	if hasReturn {
		if group, ok := returnLayout.(GroupLayout); ok {
			class, err := classifyFor(a.Platform, retCalc.Storage(), group)
			if err != nil {
				return nil, false, err
			}
			returnInMemory = class == STRUCT_REFERENCE
		}
	}

	switch {
	case returnInMemory:
		bindings := argCalc.GetIndirectBindings()
		builder.AddArgumentBindings(AddressCarrier, PointerLayout, bindings).MarkIndirectResult()

	case hasReturn:
		bindings, err := retCalc.GetBindings(returnCarrier, returnLayout)
		if err != nil {
			return nil, false, err
		}
		builder.SetReturnBindings(returnCarrier, returnLayout, bindings)
	}

	enteredVarArgs := false

	for i, arg := range args {
		// The variadic boundary is a caller-side (Unbox) concern per
		// §4.4.2: an upcall's argument calculator is always a
		// BoxCalculator, and Box must never see forVarArgs=true, or
		// nextStorage's Windows integer-bank rewrite would misfire on a
		// variadic float upcall argument.
		if !forUpcall && !enteredVarArgs && options.IsVarargsIndex(i) {
			if a.Platform.VarArgsOnStack() {
				argCalc.Storage().adjustForVarArgs()
			} else {
				argCalc.Storage().enterVariadicSection()
			}
			enteredVarArgs = true
		}

		bindings, err := argCalc.GetBindings(arg.Carrier, arg.Layout)
		if err != nil {
			return nil, false, err
		}

		builder.AddArgumentBindings(arg.Carrier, arg.Layout, bindings)
	}

	return builder.Build(), returnInMemory, nil
}
