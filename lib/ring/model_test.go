// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ring_test

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/bureau-foundation/ringbuffer/lib/ring"
)

// model is the reference behavior of a ring buffer expressed over a
// plain slice.
type model struct {
	capacity int
	elements []int
}

func (m *model) append(value int) {
	m.elements = append(m.elements, value)
	if len(m.elements) > m.capacity {
		m.elements = slices.Clone(m.elements[len(m.elements)-m.capacity:])
	}
}

func (m *model) replace(low, high int, values []int) {
	width := high - low
	delta := max(-width, min(len(values)-width, m.capacity-len(m.elements)))
	kept := values[len(values)-(width+delta):]
	m.elements = slices.Concat(m.elements[:low], kept, m.elements[high:])
}

func (m *model) remove(low, high int) {
	m.elements = slices.Concat(m.elements[:low], m.elements[high:])
}

// TestDifferentialAgainstModel applies random operation sequences to a
// Buffer and to the slice model and compares them after every step.
// Clones taken along the way must keep the contents they had when
// they were taken.
func TestDifferentialAgainstModel(t *testing.T) {
	t.Parallel()
	for seed := uint64(1); seed <= 40; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			random := rand.New(rand.NewPCG(seed, seed*7919))
			capacity := 1 + random.IntN(8)
			buffer, err := ring.New[int](capacity)
			if err != nil {
				t.Fatalf("New(%d): %v", capacity, err)
			}
			reference := &model{capacity: capacity}

			type frozen struct {
				buffer   *ring.Buffer[int]
				elements []int
			}
			var clones []frozen
			next := 0

			for step := range 300 {
				count := len(reference.elements)
				low := random.IntN(count + 1)
				high := low + random.IntN(count-low+1)
				var description string

				switch operation := random.IntN(10); {
				case operation < 4:
					next++
					buffer.Append(next)
					reference.append(next)
					description = fmt.Sprintf("Append(%d)", next)
				case operation < 6:
					values := make([]int, random.IntN(capacity+2))
					for index := range values {
						next++
						values[index] = next
					}
					if err := buffer.Replace(low, high, values...); err != nil {
						t.Fatalf("step %d: Replace(%d, %d, %v): %v", step, low, high, values, err)
					}
					reference.replace(low, high, values)
					description = fmt.Sprintf("Replace(%d, %d, %v)", low, high, values)
				case operation < 8:
					if err := buffer.Remove(low, high); err != nil {
						t.Fatalf("step %d: Remove(%d, %d): %v", step, low, high, err)
					}
					reference.remove(low, high)
					description = fmt.Sprintf("Remove(%d, %d)", low, high)
				case operation < 9:
					if count == 0 {
						continue
					}
					next++
					index := random.IntN(count)
					if err := buffer.Set(index, next); err != nil {
						t.Fatalf("step %d: Set(%d): %v", step, index, err)
					}
					reference.elements[index] = next
					description = fmt.Sprintf("Set(%d, %d)", index, next)
				default:
					clones = append(clones, frozen{buffer: buffer.Clone(), elements: slices.Clone(reference.elements)})
					description = "Clone()"
				}

				if got := buffer.Elements(); !slices.Equal(got, reference.elements) {
					t.Fatalf("step %d %s: got %v, want %v (%#v)", step, description, got, reference.elements, buffer)
				}
				if buffer.Len() > capacity || buffer.Cap() != capacity {
					t.Fatalf("step %d %s: Len=%d Cap=%d", step, description, buffer.Len(), buffer.Cap())
				}
			}

			for index, clone := range clones {
				if got := clone.buffer.Elements(); !slices.Equal(got, clone.elements) {
					t.Errorf("clone %d changed: got %v, want %v", index, got, clone.elements)
				}
			}
		})
	}
}
