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

// Package abi implements the AArch64 C ABI classification-and-allocation
// engine: the type classifier, the per-call storage calculator, the
// Unbox/Box binding calculators, and the per-platform ABI descriptors.
//
// This package has no notion of a trampoline, a linker, or managed-language
// values. It only composes a Binding alphabet (see binding.go) into ordered
// recipes, given a MemoryLayout and a carrier class. The package that turns
// those recipes into machine code lives outside this module.
package abi
