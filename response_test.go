package idanalyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseErr(t *testing.T) {
	tests := []struct {
		name    string
		resp    Response
		wantNil bool
		code    int
		message string
	}{
		{name: "no error key", resp: Response{"result": "ok"}, wantNil: true},
		{name: "null", resp: Response{"error": nil}, wantNil: true},
		{name: "false", resp: Response{"error": false}, wantNil: true},
		{name: "empty object", resp: Response{"error": map[string]interface{}{}}, wantNil: true},
		{name: "empty string", resp: Response{"error": ""}, wantNil: true},
		{
			name:    "object",
			resp:    Response{"error": map[string]interface{}{"code": float64(14), "message": "Dual-side mismatch"}},
			code:    14,
			message: "Dual-side mismatch",
		},
		{
			name:    "string code",
			resp:    Response{"error": map[string]interface{}{"code": "21", "message": "x"}},
			code:    21,
			message: "x",
		},
		{name: "bare string", resp: Response{"error": "boom"}, message: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := tt.resp.Err()
			if tt.wantNil {
				assert.Nil(t, apiErr)
				return
			}
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestResponseAccessors(t *testing.T) {
	resp := Response{
		"success": true,
		"url":     "https://docupass.app/abc",
		"result":  map[string]interface{}{"firstName": "JOHN"},
	}

	assert.True(t, resp.Bool("success"))
	assert.False(t, resp.Bool("url"))
	assert.Equal(t, "https://docupass.app/abc", resp.String("url"))
	assert.Equal(t, "", resp.String("missing"))
	assert.Equal(t, "JOHN", resp.Map("result")["firstName"])
	assert.Nil(t, resp.Map("success"))
}

func TestHTTPErrorMessage(t *testing.T) {
	assert.Equal(t, "request failed with status 500", (&HTTPError{StatusCode: 500}).Error())
	assert.Equal(t, "request failed with status 404: nope", (&HTTPError{StatusCode: 404, Body: "nope"}).Error())
}
