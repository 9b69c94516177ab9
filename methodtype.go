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

// Carrier and its four values are re-exported for callers building a
// MethodType by hand.
type Carrier = abi.Carrier

const (
	IntegerCarrier = abi.IntegerCarrier
	FloatCarrier   = abi.FloatCarrier
	BufferCarrier  = abi.BufferCarrier
	AddressCarrier = abi.AddressCarrier
)

// MethodType is the managed side of a call: the carrier class each
// argument and the return value are held in on the managed stack or in
// managed registers, independent of how the C side classifies them.
type MethodType struct {
	Args   []Carrier
	Return Carrier
	Void   bool
}

// NewMethodType builds a MethodType from an explicit return carrier and
// argument carrier list. Use VoidMethodType for functions with no return
// value.
func NewMethodType(ret Carrier, args ...Carrier) *MethodType {
	return &MethodType{Args: args, Return: ret}
}

// VoidMethodType builds a MethodType for a function with no return value.
func VoidMethodType(args ...Carrier) *MethodType {
	return &MethodType{Args: args, Void: true}
}

// FunctionDescriptor is the C side of a call: the AAPCS64-relevant memory
// layout of each argument and of the return value, independent of how the
// managed side carries them.
type FunctionDescriptor struct {
	Args   []MemoryLayout
	Return MemoryLayout
}

// NewFunctionDescriptor builds a FunctionDescriptor from a return layout
// (nil for void) and an argument layout list.
func NewFunctionDescriptor(ret MemoryLayout, args ...MemoryLayout) *FunctionDescriptor {
	return &FunctionDescriptor{Args: args, Return: ret}
}
