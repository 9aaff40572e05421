package cache

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = ":"

// Class identifies the family a cache key belongs to, e.g. "posts" or "profile".
type Class string

func (c Class) String() string { return string(c) }

// Key is a structured cache key. It renders as namespace:class:param1:param2...
// where every parameter is escaped so that it cannot introduce a separator.
type Key struct {
	Class  Class
	Params []string
}

// NewKey builds a Key from a class and arbitrary arguments. Arguments are
// rendered deterministically, see serializeValue.
func NewKey(class Class, args ...any) Key {
	params := make([]string, 0, len(args))
	for _, arg := range args {
		params = append(params, serializeValue(arg))
	}
	return Key{Class: class, Params: params}
}

// String renders the key without a namespace, mostly for logging.
func (k Key) String() string {
	return strings.Join(append([]string{escapeSegment(string(k.Class))}, escapeAll(k.Params)...), KeySeparator)
}

// Pattern selects keys for invalidation. An empty Class selects every key in
// the namespace. Params is compared segment by segment as a prefix, so
// Pattern{Class: "comments", Params: []string{"post"}} matches
// comments:post:1 and comments:post:2 but never comments:profile:1.
type Pattern struct {
	Class  Class
	Params []string
}

// ClassPattern selects every key of class whose leading params equal paramPrefix.
func ClassPattern(class Class, paramPrefix ...string) Pattern {
	return Pattern{Class: class, Params: paramPrefix}
}

// Matches reports whether key falls inside the pattern.
func (p Pattern) Matches(key Key) bool {
	if p.Class == "" {
		return true
	}
	if key.Class != p.Class {
		return false
	}
	if len(p.Params) > len(key.Params) {
		return false
	}
	for i, param := range p.Params {
		if key.Params[i] != param {
			return false
		}
	}
	return true
}

func (p Pattern) String() string {
	if p.Class == "" {
		return "*"
	}
	return Key(p).String() + KeySeparator + "*"
}

// KeySerializer renders structured keys into store keys and parses them back.
// Implementations must guarantee ParseKey(SerializeKey(k)) == k.
type KeySerializer interface {
	SerializeKey(namespace string, key Key) string
	ParseKey(namespace, raw string) (Key, bool)
}

// defaultKeySerializer joins escaped segments with KeySeparator.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

func (s *defaultKeySerializer) SerializeKey(namespace string, key Key) string {
	parts := make([]string, 0, len(key.Params)+2)
	parts = append(parts, namespace, escapeSegment(string(key.Class)))
	parts = append(parts, escapeAll(key.Params)...)
	return strings.Join(parts, KeySeparator)
}

func (s *defaultKeySerializer) ParseKey(namespace, raw string) (Key, bool) {
	prefix := namespace + KeySeparator
	if !strings.HasPrefix(raw, prefix) {
		return Key{}, false
	}

	segments := strings.Split(strings.TrimPrefix(raw, prefix), KeySeparator)
	if segments[0] == "" {
		return Key{}, false
	}

	key := Key{Class: Class(unescapeSegment(segments[0]))}
	if len(segments) > 1 {
		key.Params = make([]string, 0, len(segments)-1)
		for _, seg := range segments[1:] {
			key.Params = append(key.Params, unescapeSegment(seg))
		}
	}
	return key, true
}

var (
	segmentEscaper   = strings.NewReplacer("%", "%25", KeySeparator, "%3A")
	segmentUnescaper = strings.NewReplacer("%3A", KeySeparator, "%25", "%")
)

func escapeSegment(s string) string   { return segmentEscaper.Replace(s) }
func unescapeSegment(s string) string { return segmentUnescaper.Replace(s) }

func escapeAll(params []string) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = escapeSegment(p)
	}
	return out
}

// serializeValue renders a single key argument.
func serializeValue(v any) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	rt := rv.Type()

	switch rt.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
		return serializeValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rt.Kind() == reflect.Slice && rv.IsNil() {
			return ""
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = serializeValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map:
		return serializeMap(rv)
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}

	if isBasicKind(rt.Kind()) {
		return fmt.Sprintf("%v", v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	return string(data)
}

// serializeMap sorts keys so the rendering is stable across runs.
func serializeMap(rv reflect.Value) string {
	pairs := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, serializeValue(iter.Key().Interface())+"="+serializeValue(iter.Value().Interface()))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func isBasicKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}
