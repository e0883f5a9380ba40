// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/ringbuffer/lib/ring"
)

// Script is a sequence of buffer operations replayed against an int64
// buffer. Scripts are JSON with comments (.json, .jsonc) or YAML
// (.yaml, .yml):
//
//	{
//	  "capacity": 3,
//	  "steps": [
//	    {"op": "append", "values": [1, 2, 3, 4]}, // evicts 1
//	    {"op": "remove", "low": 0, "high": 1}
//	  ]
//	}
type Script struct {
	// Capacity of the buffer. Zero defers to --capacity or the config.
	Capacity int    `json:"capacity" yaml:"capacity"`
	Steps    []Step `json:"steps" yaml:"steps"`
}

// Operation names a buffer mutation.
type Operation string

const (
	OperationAppend    Operation = "append"
	OperationInsert    Operation = "insert"
	OperationReplace   Operation = "replace"
	OperationRemove    Operation = "remove"
	OperationRemoveAll Operation = "remove_all"
	OperationSet       Operation = "set"
)

// Step is one operation. Which fields apply depends on Op: append
// uses Values; insert uses Index and Values; replace uses Low, High,
// and Values; remove uses Low and High; set uses Index and Value.
type Step struct {
	Op     Operation `json:"op" yaml:"op"`
	Index  int       `json:"index,omitempty" yaml:"index,omitempty"`
	Low    int       `json:"low,omitempty" yaml:"low,omitempty"`
	High   int       `json:"high,omitempty" yaml:"high,omitempty"`
	Values []int64   `json:"values,omitempty" yaml:"values,omitempty"`
	Value  *int64    `json:"value,omitempty" yaml:"value,omitempty"`
}

// parseScript decodes a script, choosing the format from the file
// extension of path. Unknown fields are rejected in both formats.
func parseScript(path string, data []byte) (*Script, error) {
	var script Script
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&script); err != nil {
			return nil, fmt.Errorf("parsing YAML script %s: %w", path, err)
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&script); err != nil {
			return nil, fmt.Errorf("parsing JSON script %s: %w", path, err)
		}
	}
	if err := script.validate(); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return &script, nil
}

func (s *Script) validate() error {
	if s.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", s.Capacity)
	}
	if len(s.Steps) == 0 {
		return errors.New("no steps")
	}
	for index, step := range s.Steps {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", index+1, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	switch s.Op {
	case OperationAppend, OperationInsert, OperationReplace, OperationRemove, OperationRemoveAll:
		return nil
	case OperationSet:
		if s.Value == nil {
			return errors.New("set requires a value")
		}
		return nil
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
}

// apply performs the step on buffer. Range and index errors from the
// buffer are returned unchanged.
func (s Step) apply(buffer *ring.Buffer[int64]) error {
	switch s.Op {
	case OperationAppend:
		buffer.Append(s.Values...)
		return nil
	case OperationInsert:
		return buffer.Insert(s.Index, s.Values...)
	case OperationReplace:
		return buffer.Replace(s.Low, s.High, s.Values...)
	case OperationRemove:
		return buffer.Remove(s.Low, s.High)
	case OperationRemoveAll:
		buffer.RemoveAll()
		return nil
	case OperationSet:
		return buffer.Set(s.Index, *s.Value)
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
}

// String describes the step for replay output, e.g.
// "replace [1, 3) with [7, 8]".
func (s Step) String() string {
	switch s.Op {
	case OperationAppend:
		return fmt.Sprintf("append %s", formatValues(s.Values))
	case OperationInsert:
		return fmt.Sprintf("insert %s at %d", formatValues(s.Values), s.Index)
	case OperationReplace:
		return fmt.Sprintf("replace [%d, %d) with %s", s.Low, s.High, formatValues(s.Values))
	case OperationRemove:
		return fmt.Sprintf("remove [%d, %d)", s.Low, s.High)
	case OperationSet:
		if s.Value == nil {
			return fmt.Sprintf("set %d", s.Index)
		}
		return fmt.Sprintf("set %d to %d", s.Index, *s.Value)
	default:
		return string(s.Op)
	}
}

func formatValues(values []int64) string {
	var builder strings.Builder
	builder.WriteByte('[')
	for index, value := range values {
		if index > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(strconv.FormatInt(value, 10))
	}
	builder.WriteByte(']')
	return builder.String()
}
