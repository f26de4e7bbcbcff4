// Copyright 2020 VMware, Inc.
// SPDX-License-Identifier: Apache-2.0

package orderedmap

import (
	"bytes"
	"encoding/json"
)

type Map struct {
	items []MapItem
	index map[string]int
}

type MapItem struct {
	Key   string
	Value interface{}
}

var _ json.Marshaler = &Map{}

func NewMap() *Map {
	return &Map{index: map[string]int{}}
}

func NewMapWithItems(items []MapItem) *Map {
	m := NewMap()
	for _, item := range items {
		m.Set(item.Key, item.Value)
	}
	return m
}

// Set replaces the value of an existing key in place, or appends the key.
func (m *Map) Set(key string, value interface{}) {
	if m.index == nil {
		m.index = map[string]int{}
	}
	if i, found := m.index[key]; found {
		m.items[i].Value = value
		return
	}
	m.index[key] = len(m.items)
	m.items = append(m.items, MapItem{key, value})
}

func (m *Map) Get(key string) (interface{}, bool) {
	if i, found := m.index[key]; found {
		return m.items[i].Value, true
	}
	return nil, false
}

// GetMap returns the value under key when it is itself a *Map.
func (m *Map) GetMap(key string) (*Map, bool) {
	val, found := m.Get(key)
	if !found {
		return nil, false
	}
	typedVal, ok := val.(*Map)
	return typedVal, ok
}

// PutMap sets key to a new empty map and returns it.
func (m *Map) PutMap(key string) *Map {
	child := NewMap()
	m.Set(key, child)
	return child
}

func (m *Map) Has(key string) bool {
	_, found := m.index[key]
	return found
}

func (m *Map) Delete(key string) bool {
	i, found := m.index[key]
	if !found {
		return false
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	delete(m.index, key)
	for j := i; j < len(m.items); j++ {
		m.index[m.items[j].Key] = j
	}
	return true
}

func (m *Map) Keys() (keys []string) {
	m.Iterate(func(k string, _ interface{}) {
		keys = append(keys, k)
	})
	return
}

func (m *Map) Iterate(iterFunc func(k string, v interface{})) {
	for _, item := range m.items {
		iterFunc(item.Key, item.Value)
	}
}

func (m *Map) Len() int { return len(m.items) }

// MarshalJSON writes keys in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range m.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(item.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := json.Marshal(item.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
