package idanalyzer

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Params is a table of request parameters keyed by API field name.
type Params map[string]interface{}

// encodeInto writes every entry of p into form, replacing existing values
// for the same key. A nil value removes the key.
func (p Params) encodeInto(form url.Values) error {
	for key, value := range p {
		values, err := encodeValue(value)
		if err != nil {
			return fmt.Errorf("failed to encode parameter %q: %w", key, err)
		}
		if values == nil {
			delete(form, key)
			continue
		}
		form[key] = values
	}
	return nil
}

// encodeValue converts one parameter into its form representation.
//
//   - strings pass through
//   - bools become "true" or "false"
//   - numbers use their shortest decimal form
//   - named scalar types are encoded by their underlying kind
//   - string slices become repeated values
//   - anything else is sent as JSON
func encodeValue(v interface{}) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case bool:
		return []string{strconv.FormatBool(t)}, nil
	case int:
		return []string{strconv.Itoa(t)}, nil
	case int64:
		return []string{strconv.FormatInt(t, 10)}, nil
	case float64:
		return []string{strconv.FormatFloat(t, 'f', -1, 64)}, nil
	case []string:
		return append([]string(nil), t...), nil
	default:
		if values, ok := encodeKind(reflect.ValueOf(t)); ok {
			return values, nil
		}
		data, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		return []string{string(data)}, nil
	}
}

// encodeKind handles named types by their underlying kind, so an enum is
// sent as its value rather than its name.
func encodeKind(v reflect.Value) ([]string, bool) {
	switch v.Kind() {
	case reflect.String:
		return []string{v.String()}, true
	case reflect.Bool:
		return []string{strconv.FormatBool(v.Bool())}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return []string{strconv.FormatInt(v.Int(), 10)}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return []string{strconv.FormatUint(v.Uint(), 10)}, true
	case reflect.Float32:
		return []string{strconv.FormatFloat(v.Float(), 'f', -1, 32)}, true
	case reflect.Float64:
		return []string{strconv.FormatFloat(v.Float(), 'f', -1, 64)}, true
	default:
		return nil, false
	}
}

// paramTable is the configuration owned by one client instance.
//
// params holds validated settings and starts from defaults(). overrides holds
// values set through SetParameter; they are applied last and never checked.
type paramTable struct {
	defaults  func() Params
	params    Params
	overrides Params
}

func newParamTable(defaults func() Params) paramTable {
	return paramTable{
		defaults:  defaults,
		params:    defaults(),
		overrides: Params{},
	}
}

// set assigns validated values. Callers validate everything first so a
// multi-key update is all-or-nothing.
func (t *paramTable) set(kv Params) {
	for k, v := range kv {
		t.params[k] = v
	}
}

func (t *paramTable) reset() {
	t.params = t.defaults()
	t.overrides = Params{}
}

// SetParameter sets an arbitrary API parameter.
//
// The value is stored in a separate override table that is merged into the
// request after all validated settings, so it wins over any setter for the
// same key. Nothing about the key or value is checked: use it for parameters
// this package has no setter for. ResetConfig clears the table.
func (t *paramTable) SetParameter(key string, value interface{}) {
	t.overrides[key] = value
}

// Parameter returns the value the next request will send for key, taking
// overrides into account.
func (t *paramTable) Parameter(key string) (interface{}, bool) {
	if v, ok := t.overrides[key]; ok {
		return v, true
	}
	v, ok := t.params[key]
	return v, ok
}

// form encodes params then overrides into a new url.Values.
func (t *paramTable) form() (url.Values, error) {
	return t.formWith(nil)
}

// formWith is form with per-request values layered between the stored
// params and the overrides.
func (t *paramTable) formWith(extra Params) (url.Values, error) {
	form := url.Values{}
	for _, layer := range []Params{t.params, extra, t.overrides} {
		if err := layer.encodeInto(form); err != nil {
			return nil, err
		}
	}
	return form, nil
}
