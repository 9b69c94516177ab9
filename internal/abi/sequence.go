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

// ArgumentBinding pairs one argument's recipe with the carrier/layout it
// was computed from, for debugging and for the property tests in §8.
type ArgumentBinding struct {
	Carrier  Carrier
	Layout   MemoryLayout
	Bindings []Binding
}

// CallingSequence is the sealed, immutable product of the engine (§3). Once
// built it is safe to share across goroutines and with the downstream
// linker without synchronization.
type CallingSequence struct {
	args              []ArgumentBinding
	hasReturn         bool
	returnBinding     ArgumentBinding
	hasIndirectResult bool
}

func (c *CallingSequence) Arguments() []ArgumentBinding { return c.args }

func (c *CallingSequence) Return() (ArgumentBinding, bool) {
	return c.returnBinding, c.hasReturn
}

// HasIndirectResult reports whether argument 0 is the synthetic indirect-
// result pointer reserving x8 (spec invariant 4).
func (c *CallingSequence) HasIndirectResult() bool { return c.hasIndirectResult }

// CallingSequenceBuilder accumulates argument and return bindings before
// being sealed by Build. A builder is single-use and owned by exactly one
// GetBindings call; nothing about it is shared between calls.
type CallingSequenceBuilder struct {
	seq *CallingSequence
}

func NewCallingSequenceBuilder() *CallingSequenceBuilder {
	return &CallingSequenceBuilder{seq: &CallingSequence{}}
}

func (b *CallingSequenceBuilder) AddArgumentBindings(carrier Carrier, layout MemoryLayout, bindings []Binding) *CallingSequenceBuilder {
	b.seq.args = append(b.seq.args, ArgumentBinding{Carrier: carrier, Layout: layout, Bindings: bindings})
	return b
}

func (b *CallingSequenceBuilder) MarkIndirectResult() *CallingSequenceBuilder {
	b.seq.hasIndirectResult = true
	return b
}

func (b *CallingSequenceBuilder) SetReturnBindings(carrier Carrier, layout MemoryLayout, bindings []Binding) *CallingSequenceBuilder {
	b.seq.hasReturn = true
	b.seq.returnBinding = ArgumentBinding{Carrier: carrier, Layout: layout, Bindings: bindings}
	return b
}

func (b *CallingSequenceBuilder) Build() *CallingSequence {
	seq := b.seq
	b.seq = nil
	return seq
}
