package jsondiff

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Codec converts between a text encoding and Values. Implementations must
// keep object member order in both directions
type Codec interface {
	// Name identifies the encoding, eg: "json"
	Name() string
	Decode(data []byte) (Value, error)
	Encode(v Value) ([]byte, error)
}

var (
	// JSON is a compact JSON codec
	JSON Codec = NewJSONCodec(0)
	// YAML is a YAML codec. patches are plain mappings, so YAML documents can
	// be diffed & patched like JSON ones
	YAML Codec = yamlCodec{}
)

var errInvalidJSON = errors.New("json: invalid document")

// jsonCodec streams through json-iterator so object members come out in
// document order, something decoding into map[string]interface{} loses
type jsonCodec struct {
	api jsoniter.API
}

// NewJSONCodec creates a JSON codec. indent > 0 pretty-prints output with
// that many spaces per level
func NewJSONCodec(indent int) Codec {
	return jsonCodec{api: jsoniter.Config{
		IndentionStep: indent,
		UseNumber:     true,
	}.Froze()}
}

func (jsonCodec) Name() string { return "json" }

func (c jsonCodec) Decode(data []byte) (Value, error) {
	// the iterator treats running out of input as a clean end, so truncated
	// documents are caught up front
	if !json.Valid(data) {
		return nil, syntaxError(data)
	}
	iter := jsoniter.ParseBytes(c.api, data)
	v := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("json: %w", iter.Error)
	}
	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue {
		return nil, fmt.Errorf("json: unexpected data after top-level value")
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("json: %w", iter.Error)
	}
	return v, nil
}

// syntaxError describes why data isn't valid json, with the byte offset
// where parsing stopped
func syntaxError(data []byte) error {
	var raw json.RawMessage
	err := json.Unmarshal(data, &raw)
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("%w: offset %d: %s", errInvalidJSON, se.Offset, se)
	}
	if err != nil {
		return fmt.Errorf("%w: %s", errInvalidJSON, err)
	}
	return errInvalidJSON
}

func readValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		obj := NewObject()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			obj.Set(key, readValue(it))
			return it.Error == nil
		})
		return obj
	case jsoniter.ArrayValue:
		arr := NewArray()
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			arr.Push(readValue(it))
			return it.Error == nil
		})
		return arr
	case jsoniter.StringValue:
		return String(iter.ReadString())
	case jsoniter.NumberValue:
		return Number(iter.ReadNumber())
	case jsoniter.BoolValue:
		return Bool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null{}
	default:
		iter.ReportError("readValue", "expected a json value")
		return Null{}
	}
}

func (c jsonCodec) Encode(v Value) ([]byte, error) {
	stream := jsoniter.NewStream(c.api, nil, 512)
	writeValue(stream, v)
	if stream.Error != nil {
		return nil, fmt.Errorf("json: %w", stream.Error)
	}
	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

func writeValue(stream *jsoniter.Stream, v Value) {
	switch x := orNull(v).(type) {
	case Null:
		stream.WriteNil()
	case Bool:
		stream.WriteBool(bool(x))
	case Number:
		if x == "" {
			stream.WriteRaw("0")
			return
		}
		stream.WriteRaw(string(x))
	case String:
		stream.WriteString(string(x))
	case *Array:
		if x.Len() == 0 {
			stream.WriteEmptyArray()
			return
		}
		stream.WriteArrayStart()
		for i, el := range x.elems {
			if i > 0 {
				stream.WriteMore()
			}
			writeValue(stream, el)
		}
		stream.WriteArrayEnd()
	case *Object:
		if x.Len() == 0 {
			stream.WriteEmptyObject()
			return
		}
		stream.WriteObjectStart()
		for i, k := range x.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			writeValue(stream, x.vals[k])
		}
		stream.WriteObjectEnd()
	}
}
