// Package jsonsample decodes a sample JSON document into an ordered value tree.
//
// encoding/json loses object key order and the textual form of numbers, both of
// which drive class inference, so the document is read token by token with
// jsontext instead.
package jsonsample

import (
	"bytes"
	"io"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/Yamashou/dartgenc/errors"
)

// Kind is the JSON kind of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Object:
		return "object"
	case Array:
		return "array"
	}
	return "unknown"
}

// Value is one node of a decoded document.
type Value struct {
	Kind Kind
	// Text is the unescaped string for String and the raw literal for Number.
	Text    string
	Bool    bool
	Members []Member // Object, in document order
	Elems   []*Value // Array
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Parse decodes exactly one JSON value from data. Syntax errors, duplicate
// object names and trailing data are reported as errors.ErrMalformedInput.
func Parse(data []byte) (*Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))

	v, err := decodeValue(dec)
	if err != nil {
		return nil, malformed(err, "decode json sample")
	}

	if _, err := dec.ReadToken(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, malformed(err, "decode json sample")
	}

	return v, nil
}

func malformed(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), errors.ErrMalformedInput)
}

func decodeValue(dec *jsontext.Decoder) (*Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty document")
		}
		return nil, err
	}

	switch tok.Kind() {
	case 'n':
		return &Value{Kind: Null}, nil
	case 't', 'f':
		return &Value{Kind: Bool, Bool: tok.Bool()}, nil
	case '"':
		return &Value{Kind: String, Text: tok.String()}, nil
	case '0':
		return &Value{Kind: Number, Text: tok.String()}, nil
	case '{':
		return decodeObject(dec)
	case '[':
		return decodeArray(dec)
	}

	return nil, errors.Newf("unexpected token %s", tok.Kind())
}

func decodeObject(dec *jsontext.Decoder) (*Value, error) {
	obj := &Value{Kind: Object}
	for {
		switch dec.PeekKind() {
		case '}':
			if _, err := dec.ReadToken(); err != nil {
				return nil, err
			}
			return obj, nil
		case 0:
			return nil, readError(dec)
		}

		keyTok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		key := keyTok.String()

		v, err := decodeValue(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "key %q", key)
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: v})
	}
}

func decodeArray(dec *jsontext.Decoder) (*Value, error) {
	arr := &Value{Kind: Array}
	for {
		switch dec.PeekKind() {
		case ']':
			if _, err := dec.ReadToken(); err != nil {
				return nil, err
			}
			return arr, nil
		case 0:
			return nil, readError(dec)
		}

		v, err := decodeValue(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", len(arr.Elems))
		}
		arr.Elems = append(arr.Elems, v)
	}
}

// readError surfaces the error behind a zero PeekKind.
func readError(dec *jsontext.Decoder) error {
	if _, err := dec.ReadToken(); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return errors.New("unexpected token")
}
