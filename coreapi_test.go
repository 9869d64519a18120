package idanalyzer

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCore(t *testing.T, api *fakeAPI) *CoreAPI {
	t.Helper()
	core, err := NewCoreAPI("test-key", api.URL())
	require.NoError(t, err)
	return core
}

func TestCoreScanDefaults(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(200, map[string]interface{}{"result": map[string]interface{}{"firstName": "JOHN"}})
	core := newTestCore(t, api)

	resp, err := core.Scan(context.Background(), ScanRequest{DocumentPrimary: "https://x.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "JOHN", resp.Map("result")["firstName"])

	req := api.last()
	assert.Equal(t, "/", req.path)
	assert.Equal(t, "https://x.com/a.png", req.form.Get("url"))
	assert.Equal(t, "2", req.form.Get("accuracy"))
	assert.Equal(t, "false", req.form.Get("authenticate"))
	assert.Equal(t, "1", req.form.Get("authenticate_module"))
	assert.Equal(t, "2000", req.form.Get("ocr_scaledown"))
	assert.Equal(t, "url", req.form.Get("outputmode"))
	assert.Equal(t, "true", req.form.Get("verify_expiry"))
	assert.Equal(t, "true", req.form.Get("vault_save"))
	assert.Equal(t, "0.4", req.form.Get("biometric_threshold"))
	assert.Equal(t, "test-key", req.form.Get("apikey"))
	assert.Equal(t, "go-sdk", req.form.Get("client"))
	_, hasFile := req.form["file_base64"]
	assert.False(t, hasFile)
}

func TestCoreScanMediaFields(t *testing.T) {
	dir := t.TempDir()
	back := filepath.Join(dir, "back.jpg")
	backContent := []byte("back-of-card")
	require.NoError(t, os.WriteFile(back, backContent, 0o600))
	inline := strings.Repeat("QUJD", 40)

	api := newFakeAPI(t)
	core := newTestCore(t, api)

	_, err := core.Scan(context.Background(), ScanRequest{
		DocumentPrimary:        inline,
		DocumentSecondary:      back,
		BiometricPhoto:         "https://cdn.example.com/selfie.png",
		BiometricVideo:         "https://cdn.example.com/selfie.mp4",
		BiometricVideoPasscode: "1234",
	})
	require.NoError(t, err)

	form := api.last().form
	assert.Equal(t, inline, form.Get("file_base64"))
	assert.Equal(t, base64.StdEncoding.EncodeToString(backContent), form.Get("file_back_base64"))
	assert.Equal(t, "https://cdn.example.com/selfie.png", form.Get("faceurl"))
	assert.Equal(t, "https://cdn.example.com/selfie.mp4", form.Get("videourl"))
	assert.Equal(t, "1234", form.Get("passcode"))
}

func TestCoreScanValidation(t *testing.T) {
	api := newFakeAPI(t)
	core := newTestCore(t, api)
	ctx := context.Background()

	tests := []struct {
		name string
		req  ScanRequest
	}{
		{"missing primary", ScanRequest{}},
		{"unresolvable primary", ScanRequest{DocumentPrimary: "nope.jpg"}},
		{"unresolvable secondary", ScanRequest{DocumentPrimary: "https://x.com/a.png", DocumentSecondary: "short"}},
		{"video without passcode", ScanRequest{DocumentPrimary: "https://x.com/a.png", BiometricVideo: "https://x.com/v.mp4"}},
		{"video with bad passcode", ScanRequest{
			DocumentPrimary:        "https://x.com/a.png",
			BiometricVideo:         "https://x.com/v.mp4",
			BiometricVideoPasscode: "12a4",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.Scan(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}
	assert.Equal(t, 0, api.count())
}

func TestCoreSetters(t *testing.T) {
	core, err := NewCoreAPI("k", "US")
	require.NoError(t, err)

	t.Run("accuracy", func(t *testing.T) {
		require.NoError(t, core.SetAccuracy(0))
		assert.True(t, errors.Is(core.SetAccuracy(3), ErrInvalidArgument))
		v, _ := core.Parameter("accuracy")
		assert.Equal(t, 0, v)
	})

	t.Run("authentication", func(t *testing.T) {
		require.NoError(t, core.EnableAuthentication(true, AuthModuleQuick))
		v, _ := core.Parameter("authenticate_module")
		assert.Equal(t, "quick", v)

		assert.True(t, errors.Is(core.EnableAuthentication(true, "3"), ErrInvalidArgument))

		require.NoError(t, core.EnableAuthentication(false, "ignored"))
		v, _ = core.Parameter("authenticate")
		assert.Equal(t, false, v)
		v, _ = core.Parameter("authenticate_module")
		assert.Equal(t, "quick", v)
	})

	t.Run("ocr resize", func(t *testing.T) {
		require.NoError(t, core.SetOCRImageResize(0))
		require.NoError(t, core.SetOCRImageResize(500))
		require.NoError(t, core.SetOCRImageResize(4000))
		assert.Error(t, core.SetOCRImageResize(499))
		assert.Error(t, core.SetOCRImageResize(4001))
	})

	t.Run("biometric threshold", func(t *testing.T) {
		require.NoError(t, core.SetBiometricThreshold(1))
		assert.Error(t, core.SetBiometricThreshold(0))
		assert.Error(t, core.SetBiometricThreshold(1.01))
	})

	t.Run("image output", func(t *testing.T) {
		require.NoError(t, core.EnableImageOutput(true, false, OutputBase64))
		assert.Error(t, core.EnableImageOutput(true, true, "png"))
		v, _ := core.Parameter("outputmode")
		assert.Equal(t, "base64", v)
	})

	t.Run("dob and age", func(t *testing.T) {
		require.NoError(t, core.VerifyDOB(""))
		require.NoError(t, core.VerifyDOB("1990/01/31"))
		assert.Error(t, core.VerifyDOB("1990-01-31"))
		v, _ := core.Parameter("verify_dob")
		assert.Equal(t, "1990/01/31", v)

		require.NoError(t, core.VerifyAge("18-99"))
		assert.Error(t, core.VerifyAge("18+"))
		v, _ = core.Parameter("verify_age")
		assert.Equal(t, "18-99", v)
	})

	t.Run("restrictions use core keys", func(t *testing.T) {
		core.RestrictCountry("US,CA")
		core.RestrictState("CA,TX")
		core.RestrictType("PD")
		form, err := core.form()
		require.NoError(t, err)
		assert.Equal(t, "US,CA", form.Get("country"))
		assert.Equal(t, "CA,TX", form.Get("region"))
		assert.Equal(t, "PD", form.Get("type"))
	})

	t.Run("vault data", func(t *testing.T) {
		require.NoError(t, core.SetVaultData("a", "b"))
		form, err := core.form()
		require.NoError(t, err)
		assert.Equal(t, "a", form.Get("vault_customdata1"))
		assert.Equal(t, "b", form.Get("vault_customdata2"))
		assert.Equal(t, "", form.Get("vault_customdata3"))
		assert.Error(t, core.SetVaultData("1", "2", "3", "4", "5", "6"))
	})

	t.Run("contract", func(t *testing.T) {
		require.NoError(t, core.GenerateContract("tpl_1", ContractPDF, map[string]interface{}{"price": "10"}))
		form, err := core.form()
		require.NoError(t, err)
		assert.Equal(t, "tpl_1", form.Get("contract_generate"))
		assert.Equal(t, "PDF", form.Get("contract_format"))
		assert.JSONEq(t, `{"price":"10"}`, form.Get("contract_prefill_data"))

		assert.Error(t, core.GenerateContract("", ContractPDF, nil))
		assert.Error(t, core.GenerateContract("tpl", "TXT", nil))
	})
}

func TestCoreFailedSetterKeepsState(t *testing.T) {
	core, err := NewCoreAPI("k", "US")
	require.NoError(t, err)
	require.NoError(t, core.EnableImageOutput(true, true, OutputURL))

	require.Error(t, core.EnableImageOutput(false, false, "jpeg"))
	v, _ := core.Parameter("outputimage")
	assert.Equal(t, true, v)
}

func TestCoreResetConfig(t *testing.T) {
	api := newFakeAPI(t)
	a := newTestCore(t, api)
	b := newTestCore(t, api)

	require.NoError(t, a.SetAccuracy(0))
	a.SetParameter("custom", "x")
	a.ThrowAPIError(true)

	v, _ := b.Parameter("accuracy")
	assert.Equal(t, 2, v, "sibling instance must keep its defaults")

	a.ResetConfig()
	v, _ = a.Parameter("accuracy")
	assert.Equal(t, 2, v)
	_, ok := a.Parameter("custom")
	assert.False(t, ok)
	assert.True(t, a.throwAPIError)
	assert.Equal(t, api.URL(), a.Endpoint())
}

func TestCoreScanDoesNotLeakPayload(t *testing.T) {
	api := newFakeAPI(t)
	core := newTestCore(t, api)
	ctx := context.Background()

	_, err := core.Scan(ctx, ScanRequest{
		DocumentPrimary:   "https://x.com/a.png",
		DocumentSecondary: "https://x.com/b.png",
	})
	require.NoError(t, err)

	_, err = core.Scan(ctx, ScanRequest{DocumentPrimary: "https://x.com/c.png"})
	require.NoError(t, err)

	form := api.last().form
	assert.Equal(t, "https://x.com/c.png", form.Get("url"))
	_, hasBack := form["url_back"]
	assert.False(t, hasBack)

	_, ok := core.Parameter("url")
	assert.False(t, ok)
	_, ok = core.Parameter("apikey")
	assert.False(t, ok)
}
