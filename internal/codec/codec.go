// Package codec serializes listener argument tuples for queued calls.
//
// Tuples are encoded as a CBOR array using deterministic core encoding, so the same
// arguments always produce the same bytes. CBOR is self-describing: decoding needs no
// schema and yields generic values. Integers come back as int64, or uint64 when they
// do not fit. Maps come back as map[string]any when every key is a string and as
// map[any]any otherwise. Structs come back as map[string]any keyed by field name.
// Encode refuses any tuple Decode could not reconstruct.
package codec

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: build encode mode: %v", err))
	}

	decMode, err = cbor.DecOptions{
		IntDec: cbor.IntDecConvertNone,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: build decode mode: %v", err))
	}
}

// Encode serializes an argument tuple.
func Encode(args []any) ([]byte, error) {
	if args == nil {
		args = []any{}
	}
	data, err := encMode.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("codec: encode %d arguments: %w", len(args), err)
	}
	if _, err := Decode(data); err != nil {
		return nil, fmt.Errorf("codec: encode %d arguments: not decodable: %w", len(args), err)
	}
	return data, nil
}

// Decode reconstructs an argument tuple produced by Encode.
func Decode(data []byte) ([]any, error) {
	var args []any
	if err := decMode.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("codec: decode arguments: %w", err)
	}
	if args == nil {
		return []any{}, nil
	}
	for i, arg := range args {
		args[i] = normalize(arg)
	}
	return args, nil
}

// normalize narrows generic decoded values: unsigned integers that fit become int64
// and maps with only string keys become map[string]any.
func normalize(v any) any {
	switch v := v.(type) {
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	case map[any]any:
		stringKeys := true
		for k := range v {
			if _, ok := k.(string); !ok {
				stringKeys = false
				break
			}
		}
		if stringKeys {
			out := make(map[string]any, len(v))
			for k, e := range v {
				out[k.(string)] = normalize(e)
			}
			return out
		}
		out := make(map[any]any, len(v))
		for k, e := range v {
			out[normalize(k)] = normalize(e)
		}
		return out
	}
	return v
}
