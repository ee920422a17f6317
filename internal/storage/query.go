/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// normalizeValue converts Go values into the store-native set described on Document.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return nil
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case float32:
		return float64(t)
	case float64:
		return t
	case string, bool:
		return t
	case time.Time:
		return t.UTC()
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC()
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case *int64:
		if t == nil {
			return nil
		}
		return *t
	case *float64:
		if t == nil {
			return nil
		}
		return *t
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}
		return out
	default:
		return fmt.Sprint(t)
	}
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = normalizeValue(v)
	}
	return out
}

// applyWrite merges data into base, resolving write sentinels against base and now.
func applyWrite(base, data map[string]interface{}, now time.Time) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(data))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range data {
		switch t := v.(type) {
		case serverTimestamp:
			out[k] = now.UTC()
		case ArrayUnionValue:
			current, _ := out[k].([]interface{})
			merged := append([]interface{}(nil), current...)
			for _, e := range t.Elems {
				e = normalizeValue(e)
				if indexOf(merged, e) < 0 {
					merged = append(merged, e)
				}
			}
			out[k] = merged
		case ArrayRemoveValue:
			current, _ := out[k].([]interface{})
			kept := make([]interface{}, 0, len(current))
			for _, e := range current {
				if indexOf(normalizeSlice(t.Elems), e) < 0 {
					kept = append(kept, e)
				}
			}
			out[k] = kept
		default:
			out[k] = normalizeValue(v)
		}
	}
	return out
}

func normalizeSlice(in []interface{}) []interface{} {
	out := make([]interface{}, len(in))
	for i, e := range in {
		out[i] = normalizeValue(e)
	}
	return out
}

func indexOf(list []interface{}, v interface{}) int {
	for i, e := range list {
		if compareValues(e, v) == 0 && typeRank(e) == typeRank(v) {
			return i
		}
	}
	return -1
}

// typeRank follows the cross-type ordering Firestore uses.
func typeRank(v interface{}) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int64, float64:
		return 2
	case time.Time:
		return 3
	case string:
		return 4
	case []interface{}:
		return 5
	case map[string]interface{}:
		return 6
	default:
		return 7
	}
}

func asNumber(v interface{}) float64 {
	switch t := v.(type) {
	case int64:
		return float64(t)
	case float64:
		return t
	}
	return 0
}

// compareValues orders two normalized values; -1, 0 or 1.
func compareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case nil:
		return 0
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case int64, float64:
		x, y := asNumber(a), asNumber(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case time.Time:
		bv := b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		default:
			return 0
		}
	case string:
		return strings.Compare(av, b.(string))
	case []interface{}:
		bv := b.([]interface{})
		for i := 0; i < len(av) && i < len(bv); i++ {
			if c := compareValues(av[i], bv[i]); c != 0 {
				return c
			}
		}
		switch {
		case len(av) < len(bv):
			return -1
		case len(av) > len(bv):
			return 1
		}
		return 0
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func matches(data map[string]interface{}, f Filter) bool {
	v, ok := data[f.Field]
	if !ok {
		return false
	}
	want := normalizeValue(f.Value)
	if f.Op == OpArrayContains {
		list, ok := v.([]interface{})
		return ok && indexOf(list, want) >= 0
	}
	// Range and equality filters only match values of the same type class.
	if typeRank(v) != typeRank(want) {
		return false
	}
	c := compareValues(v, want)
	switch f.Op {
	case OpEqual:
		return c == 0
	case OpLess:
		return c < 0
	case OpLessEqual:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpGreaterEqual:
		return c >= 0
	}
	return false
}

// evaluate runs q against the documents of one collection. Documents missing
// an ordered field are excluded, as in Firestore.
func evaluate(docs map[string]map[string]interface{}, q Query) []Document {
	out := make([]Document, 0, len(docs))
	for id, data := range docs {
		keep := true
		for _, f := range q.Filters {
			if !matches(data, f) {
				keep = false
				break
			}
		}
		for _, o := range q.Orders {
			if _, ok := data[o.Field]; !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, Document{ID: id, Data: cloneMap(data)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range q.Orders {
			c := compareValues(out[i].Data[o.Field], out[j].Data[o.Field])
			if c == 0 {
				continue
			}
			if o.Direction == Desc {
				return c > 0
			}
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func cloneMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		if list, ok := v.([]interface{}); ok {
			v = append([]interface{}(nil), list...)
		}
		out[k] = v
	}
	return out
}
