package object

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// FromJSON decodes a JSON document. Objects become Dictionaries with their
// keys in document order, whole numbers become Integers and other numbers
// Floats. JSON null is not supported.
func FromJSON(data []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	obj, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid json: trailing data")
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (Object, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	switch tok := tok.(type) {
	case json.Delim:
		switch tok {
		case '[':
			var items []Object
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("invalid json: %w", err)
			}
			return &Array{items: items}, nil
		case '{':
			dict := NewDictionary()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("invalid json: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid json: unexpected object key %v", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				if err := dict.Set(NewString(key), value); err != nil {
					return nil, err
				}
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("invalid json: %w", err)
			}
			return dict, nil
		}
		return nil, fmt.Errorf("invalid json: unexpected %v", tok)
	case json.Number:
		if !strings.ContainsAny(tok.String(), ".eE") {
			if v, err := tok.Int64(); err == nil {
				return NewInt(v), nil
			}
		}
		v, err := tok.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
		return NewFloat(v), nil
	case string:
		return NewString(tok), nil
	case bool:
		return NewBool(tok), nil
	case nil:
		return nil, errors.New("invalid json: null is not supported")
	}
	return nil, fmt.Errorf("invalid json: unexpected %v", tok)
}

// ToJSON encodes an object as JSON. Dictionary keys are encoded by their
// display form and keep their order. Colors and images are encoded as their
// display form.
func ToJSON(obj Object) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, obj); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, obj Object) error {
	switch obj := obj.(type) {
	case *Array:
		buf.WriteByte('[')
		for i, item := range obj.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case *Dictionary:
		buf.WriteByte('{')
		for i, key := range obj.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(key.String())
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := encodeValue(buf, obj.values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	value := obj.Interface()
	switch obj.(type) {
	case *Color, *Image:
		value = obj.String()
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
