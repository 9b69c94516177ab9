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

// Package abi64 arranges AArch64 C ABI calling sequences.
//
// Given a function's MethodType (the managed-side carrier classes) and its
// FunctionDescriptor (C-level layouts), GetBindings produces a
// CallingSequence: a deterministic plan for how each argument and the
// return value cross the AArch64 procedure-call boundary, implementing
// AAPCS64 and its macOS/Windows variadic-argument exceptions.
//
// This package does not generate machine code. It composes a fixed
// alphabet of binding operations (dup, vmLoad, vmStore, bufferLoad,
// bufferStore, allocate, copy, unboxAddress, boxAddress, boxAddressRaw)
// into ordered recipes that a downstream trampoline linker executes.
//
//	seq, returnInMemory, err := abi64.LINUX.GetBindings(mt, fd, false, nil)
//
// selects the Linux AAPCS64 policy; abi64.MACOS and abi64.WINDOWS select
// the macOS and Windows variants.
package abi64
