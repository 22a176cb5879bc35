package msgpack

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/unkn0wn-root/msgpack/internal/encoding"
	"github.com/unkn0wn-root/msgpack/internal/errs"
	"github.com/unkn0wn-root/msgpack/internal/mpvalue"
)

// Marshal converts v into a Value tree (via toValue) and encodes it as
// MessagePack in one shot.
func Marshal(v any, opts ...Option) ([]byte, error) {
	c := buildConfig(opts)
	root, err := toValue(v, 0, c.def, c.maxDepth)
	if err != nil {
		return nil, err
	}
	return encoding.Encode(root, c.maxDepth)
}

// Unmarshal decodes exactly one MessagePack value from b. Trailing bytes
// after the value are an error; a truncated value is IncompleteError, never
// ErrNeedMore (that belongs to the incremental Unpacker).
func Unmarshal(b []byte, opts ...Option) (Value, error) {
	u := NewUnpacker(opts...)
	u.Feed(b)
	v, err := u.Next()
	if err != nil {
		if err == ErrNeedMore {
			return Value{}, &IncompleteError{}
		}
		return Value{}, err
	}
	if u.q.Available() > 0 {
		return Value{}, errs.ExtraData()
	}
	return v, nil
}

// toValue converts a native Go value into a Value. Kinds with no direct
// mapping fall back to def (the Marshal/Packer Default hook) if configured;
// absent a hook this is a TypeError. depth is checked against maxDepth on
// every call; slice/map elements and the Default hook re-entry each add one
// level (a pointer dereference adds none), so a Default that keeps returning
// non-encodable values trips a NestingError instead of recursing the Go call
// stack unboundedly.
func toValue(v any, depth int, def DefaultFunc, maxDepth int) (Value, error) {
	if depth >= maxDepth {
		return Value{}, &errs.NestingError{Depth: depth + 1, Limit: maxDepth}
	}

	switch x := v.(type) {
	case nil:
		return NilValue(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Uint(uint64(x)), nil
	case uint8:
		return Uint(uint64(x)), nil
	case uint16:
		return Uint(uint64(x)), nil
	case uint32:
		return Uint(uint64(x)), nil
	case uint64:
		return Uint(x), nil
	case float32:
		return Float32(x), nil
	case float64:
		return Float64(x), nil
	case string:
		return Str(x), nil
	case []byte:
		return Bin(x), nil
	case Ext:
		return ExtValue(x), nil
	case Timestamp:
		return TimestampValue(x), nil
	case Raw:
		return RawValue(x), nil
	case map[string]any:
		return stringMapToValue(x, depth, def, maxDepth)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return NilValue(), nil
		}
		return toValue(rv.Elem().Interface(), depth, def, maxDepth)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NilValue(), nil
		}
		items := make([]Value, rv.Len())
		for i := range items {
			it, err := toValue(rv.Index(i).Interface(), depth+1, def, maxDepth)
			if err != nil {
				return Value{}, err
			}
			items[i] = it
		}
		return Array(items), nil
	case reflect.Map:
		if rv.IsNil() {
			return NilValue(), nil
		}
		return reflectMapToValue(rv, depth, def, maxDepth)
	}

	if def != nil {
		result, err := def(v)
		if err != nil {
			return Value{}, err
		}
		return toValue(result, depth+1, def, maxDepth)
	}
	return Value{}, &errs.TypeError{Detail: fmt.Sprintf("cannot encode go type %T", v)}
}

// stringMapToValue sorts keys for deterministic output: Go map iteration
// order is randomized, but spec.md §6's encode determinism ("byte output
// order equals value iteration order") requires a stable order to mean
// anything for a native Go map input.
func stringMapToValue(m map[string]any, depth int, def DefaultFunc, maxDepth int) (Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]mpvalue.KV, 0, len(keys))
	for _, k := range keys {
		val, err := toValue(m[k], depth+1, def, maxDepth)
		if err != nil {
			return Value{}, err
		}
		kv = append(kv, mpvalue.KV{Key: Str(k), Value: val})
	}
	return MapOf(kv), nil
}

func reflectMapToValue(rv reflect.Value, depth int, def DefaultFunc, maxDepth int) (Value, error) {
	type entry struct {
		key Value
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := toValue(iter.Key().Interface(), depth+1, def, maxDepth)
		if err != nil {
			return Value{}, err
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return fmt.Sprint(entries[i].key) < fmt.Sprint(entries[j].key)
	})
	kv := make([]mpvalue.KV, 0, len(entries))
	for _, e := range entries {
		val, err := toValue(e.val.Interface(), depth+1, def, maxDepth)
		if err != nil {
			return Value{}, err
		}
		kv = append(kv, mpvalue.KV{Key: e.key, Value: val})
	}
	return MapOf(kv), nil
}
