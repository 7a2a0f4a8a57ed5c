package item

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrMalformed is returned by DecodePayload when the body is not a single JSON object.
var ErrMalformed = errors.New("malformed JSON body")

// Problem classifies why a field failed validation.
type Problem string

const (
	ProblemMissing   Problem = "missing"
	ProblemWrongType Problem = "wrong type"
	ProblemInvalid   Problem = "invalid value"
)

// ValidationError names the offending field and why it was rejected.
type ValidationError struct {
	Field   string
	Problem Problem
	Value   any
	msg     string
}

func (e *ValidationError) Error() string { return e.msg }

// Payload is an untyped request body as decoded from JSON.
type Payload map[string]any

// field returns the raw value for key. A JSON null counts as absent.
func (p Payload) field(key string) (any, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// DecodePayload parses a request body into a Payload. Numbers are kept as
// json.Number so price parsing sees the literal text.
func DecodePayload(body []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var p Payload
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}
	if p == nil {
		return nil, errors.Wrap(ErrMalformed, "expected a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Wrap(ErrMalformed, "unexpected data after JSON object")
	}
	return p, nil
}

type rule struct {
	field string
	apply func(raw any, it *Item) error
}

// rules run in this order, so the first failing field is reported.
var rules = []rule{
	{"name", applyName},
	{"price", applyPrice},
	{"size", applySize},
}

// ValidateForCreate requires name, price and size and returns the normalized
// item. The id is left empty for the caller to assign.
func ValidateForCreate(p Payload) (Item, error) {
	var it Item
	for _, r := range rules {
		raw, ok := p.field(r.field)
		if !ok {
			return Item{}, &ValidationError{
				Field:   r.field,
				Problem: ProblemMissing,
				msg:     fmt.Sprintf("%s is required", r.field),
			}
		}
		if err := r.apply(raw, &it); err != nil {
			return Item{}, err
		}
	}
	return it, nil
}

// ValidateForUpdate applies the fields present in p on top of existing.
// Absent fields keep their existing value; the id never changes.
func ValidateForUpdate(existing Item, p Payload) (Item, error) {
	it := existing
	for _, r := range rules {
		raw, ok := p.field(r.field)
		if !ok {
			continue
		}
		if err := r.apply(raw, &it); err != nil {
			return existing, err
		}
	}
	it.ID = existing.ID
	return it, nil
}

func applyName(raw any, it *Item) error {
	s, ok := raw.(string)
	if !ok {
		return wrongType("name", "a string", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return invalid("name", raw, "name must not be empty")
	}
	it.Name = s
	return nil
}

func applyPrice(raw any, it *Item) error {
	var text string
	switch v := raw.(type) {
	case json.Number:
		text = v.String()
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("price", raw, fmt.Sprintf("price must be a finite number, got %v", v))
		}
		text = strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		text = strings.TrimSpace(v)
	default:
		return wrongType("price", "a number", raw)
	}
	if text == "" {
		return invalid("price", raw, "price must not be empty")
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return invalid("price", raw, fmt.Sprintf("price must be a number, got %q", text))
	}
	if d.IsNegative() {
		return invalid("price", raw, fmt.Sprintf("price must not be negative, got %s", text))
	}
	// text is known to be a plain decimal literal here; ParseFloat rounds it
	// without expanding the exponent, so huge exponents stay cheap.
	f, err := strconv.ParseFloat(text, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return invalid("price", raw, fmt.Sprintf("price is out of range, got %s", text))
	}
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return invalid("price", raw, fmt.Sprintf("price must be a number, got %q", text))
	}
	if f == 0 {
		f = 0 // drop negative zero
	}
	it.Price = f
	return nil
}

func applySize(raw any, it *Item) error {
	s, ok := raw.(string)
	if !ok {
		return wrongType("size", "a string", raw)
	}
	size, ok := ParseSize(s)
	if !ok {
		return invalid("size", raw, fmt.Sprintf("size must be one of %s, got %q", sizeList(), s))
	}
	it.Size = size
	return nil
}

func sizeList() string {
	names := make([]string, len(Sizes))
	for i, s := range Sizes {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func wrongType(field, want string, raw any) error {
	return &ValidationError{
		Field:   field,
		Problem: ProblemWrongType,
		Value:   raw,
		msg:     fmt.Sprintf("%s must be %s, got %s %s", field, want, jsonType(raw), jsonText(raw)),
	}
}

func invalid(field string, raw any, msg string) error {
	return &ValidationError{Field: field, Problem: ProblemInvalid, Value: raw, msg: msg}
}

// jsonText renders v the way it appeared in the request body.
func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func jsonType(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return reflect.TypeOf(v).String()
	}
}
