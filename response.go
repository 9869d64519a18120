package idanalyzer

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Response is a decoded API response. The library does not interpret it
// beyond the "error" entry.
type Response map[string]interface{}

// Err returns the API error carried by the response, or nil when the
// response has no error entry or the entry is empty.
func (r Response) Err() *APIError {
	raw, ok := r["error"]
	if !ok || !truthy(raw) {
		return nil
	}

	switch v := raw.(type) {
	case map[string]interface{}:
		apiErr := &APIError{Details: v}
		apiErr.Code = toInt(v["code"])
		if msg, ok := v["message"].(string); ok {
			apiErr.Message = msg
		} else if v["message"] != nil {
			apiErr.Message = fmt.Sprint(v["message"])
		}
		return apiErr
	case string:
		return &APIError{Message: v}
	default:
		return &APIError{Message: fmt.Sprint(v)}
	}
}

// Bool returns the value stored under key when it is a JSON boolean.
func (r Response) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Map returns the nested object stored under key, or nil.
func (r Response) Map(key string) map[string]interface{} {
	m, _ := r[key].(map[string]interface{})
	return m
}

// String returns the value stored under key when it is a JSON string.
func (r Response) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// truthy mirrors how the API treats an "error" entry: absent, null, false,
// zero, empty string and empty object all mean no error.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case json.Number:
		return t.String() != "0"
	case map[string]interface{}:
		return len(t) > 0
	case []interface{}:
		return len(t) > 0
	default:
		return true
	}
}

func toInt(v interface{}) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case json.Number:
		n, _ := t.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	default:
		return 0
	}
}
