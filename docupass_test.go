package idanalyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocuPass(t *testing.T, api *fakeAPI) *DocuPass {
	t.Helper()
	dp, err := NewDocuPass("test-key", "ACME Corp", api.URL())
	require.NoError(t, err)
	return dp
}

func TestNewDocuPassValidation(t *testing.T) {
	_, err := NewDocuPass("k", "", "US")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewDocuPass("", "ACME", "US")
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewDocuPass("k", "ACME", "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDocuPassCreateModules(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(200, map[string]interface{}{"reference": "ABC", "url": "https://docupass.app/ABC"})
	dp := newTestDocuPass(t, api)
	ctx := context.Background()

	creators := []struct {
		name string
		fn   func(context.Context) (Response, error)
		want string
	}{
		{"iframe", dp.CreateIframe, "0"},
		{"mobile", dp.CreateMobile, "1"},
		{"redirection", dp.CreateRedirection, "2"},
		{"live mobile", dp.CreateLiveMobile, "3"},
	}

	for _, c := range creators {
		t.Run(c.name, func(t *testing.T) {
			resp, err := c.fn(ctx)
			require.NoError(t, err)
			assert.Equal(t, "ABC", resp.String("reference"))

			req := api.last()
			assert.Equal(t, "/docupass/create", req.path)
			assert.Equal(t, c.want, req.form.Get("type"))
			assert.Equal(t, "ACME Corp", req.form.Get("companyname"))
			assert.Equal(t, "2", req.form.Get("authenticate_module"))
			assert.Equal(t, "1", req.form.Get("maxattempt"))
			assert.Equal(t, "1", req.form.Get("return_type"))
		})
	}

	_, err := dp.Create(ctx, DocuPassModule(4))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDocuPassSetters(t *testing.T) {
	dp, err := NewDocuPass("k", "ACME", "US")
	require.NoError(t, err)

	t.Run("max attempt", func(t *testing.T) {
		require.NoError(t, dp.SetMaxAttempt(1))
		require.NoError(t, dp.SetMaxAttempt(10))
		assert.Error(t, dp.SetMaxAttempt(0))
		assert.Error(t, dp.SetMaxAttempt(11))
	})

	t.Run("urls", func(t *testing.T) {
		require.NoError(t, dp.SetCallbackURL("https://www.example.com/cb"))
		require.NoError(t, dp.SetCallbackURL(""))
		assert.Error(t, dp.SetCallbackURL("localhost/cb"))

		require.NoError(t, dp.SetRedirectionURL("https://example.com/ok", ""))
		assert.Error(t, dp.SetRedirectionURL("https://example.com/ok", "not a url"))
		v, _ := dp.Parameter("successredir")
		assert.Equal(t, "https://example.com/ok", v)
	})

	t.Run("authentication", func(t *testing.T) {
		require.NoError(t, dp.EnableAuthentication(true, AuthModuleV1, 0.5))
		v, _ := dp.Parameter("authenticate_minscore")
		assert.Equal(t, 0.5, v)

		assert.Error(t, dp.EnableAuthentication(true, AuthModuleV1, 0))
		assert.Error(t, dp.EnableAuthentication(true, "x", 0.5))

		require.NoError(t, dp.EnableAuthentication(false, "", 0))
		v, _ = dp.Parameter("authenticate_minscore")
		assert.Equal(t, 0, v)
		v, _ = dp.Parameter("authenticate_module")
		assert.Equal(t, "1", v)
	})

	t.Run("face verification", func(t *testing.T) {
		require.NoError(t, dp.EnableFaceVerification(true, BiometricVideo, 0.6))
		v, _ := dp.Parameter("biometric")
		assert.Equal(t, 2, v)
		assert.Error(t, dp.EnableFaceVerification(true, BiometricType(3), 0.6))
		assert.Error(t, dp.EnableFaceVerification(true, BiometricPhoto, 1.5))

		require.NoError(t, dp.EnableFaceVerification(false, 0, 0))
		v, _ = dp.Parameter("biometric")
		assert.Equal(t, 0, v)
	})

	t.Run("callback image", func(t *testing.T) {
		require.NoError(t, dp.SetCallbackImage(false, true, CallbackImageBase64))
		v, _ := dp.Parameter("return_type")
		assert.Equal(t, 0, v)
		assert.Error(t, dp.SetCallbackImage(true, true, CallbackImageType(2)))
	})

	t.Run("qr code", func(t *testing.T) {
		require.NoError(t, dp.SetQRCodeFormat("000000", "#FFF", 50, 0))
		require.NoError(t, dp.SetQRCodeFormat("000000", "FFFFFF", 1, 50))
		assert.Error(t, dp.SetQRCodeFormat("zzzzzz", "FFFFFF", 5, 1))
		assert.Error(t, dp.SetQRCodeFormat("000000", "FFFF", 5, 1))
		assert.Error(t, dp.SetQRCodeFormat("000000", "FFFFFF", 0, 1))
		assert.Error(t, dp.SetQRCodeFormat("000000", "FFFFFF", 51, 1))
		assert.Error(t, dp.SetQRCodeFormat("000000", "FFFFFF", 5, -1))
		assert.Error(t, dp.SetQRCodeFormat("000000", "FFFFFF", 5, 51))

		v, _ := dp.Parameter("qr_size")
		assert.Equal(t, 1, v)
	})

	t.Run("restrictions use document keys", func(t *testing.T) {
		dp.RestrictCountry("US")
		dp.RestrictState("CA")
		dp.RestrictType("P")
		form, err := dp.form()
		require.NoError(t, err)
		assert.Equal(t, "US", form.Get("documentcountry"))
		assert.Equal(t, "CA", form.Get("documentregion"))
		assert.Equal(t, "P", form.Get("documenttype"))
		_, hasCountry := form["country"]
		assert.False(t, hasCountry)
	})
}

func TestDocuPassContractsAreExclusive(t *testing.T) {
	dp, err := NewDocuPass("k", "ACME", "US")
	require.NoError(t, err)

	require.NoError(t, dp.GenerateContract("gen", ContractPDF, nil))
	require.NoError(t, dp.SignContract("sign", ContractDOCX, nil))

	form, err := dp.form()
	require.NoError(t, err)
	assert.Equal(t, "", form.Get("contract_generate"))
	assert.Equal(t, "sign", form.Get("contract_sign"))
	assert.Equal(t, "DOCX", form.Get("contract_format"))
	assert.Equal(t, "{}", form.Get("contract_prefill_data"))

	require.NoError(t, dp.GenerateContract("gen2", ContractHTML, nil))
	form, err = dp.form()
	require.NoError(t, err)
	assert.Equal(t, "gen2", form.Get("contract_generate"))
	assert.Equal(t, "", form.Get("contract_sign"))
}

func TestDocuPassCreateSignature(t *testing.T) {
	api := newFakeAPI(t)
	dp := newTestDocuPass(t, api)

	_, err := dp.CreateSignature(context.Background(), "tpl_9", ContractPDF, map[string]interface{}{"name": "Jo"})
	require.NoError(t, err)

	req := api.last()
	assert.Equal(t, "/docupass/sign", req.path)
	assert.Equal(t, "tpl_9", req.form.Get("template_id"))
	assert.Equal(t, "PDF", req.form.Get("contract_format"))
	assert.JSONEq(t, `{"name":"Jo"}`, req.form.Get("contract_prefill_data"))
	assert.Equal(t, "ACME Corp", req.form.Get("companyname"))

	_, ok := dp.Parameter("template_id")
	assert.False(t, ok)
	v, _ := dp.Parameter("contract_format")
	assert.Equal(t, "", v)

	_, err = dp.CreateSignature(context.Background(), "", ContractPDF, nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDocuPassCreateSignatureHonorsOverrides(t *testing.T) {
	api := newFakeAPI(t)
	dp := newTestDocuPass(t, api)
	dp.SetParameter("contract_format", "HTML")
	dp.SetParameter("contract_prefill_data", map[string]interface{}{"name": "Override"})

	_, err := dp.CreateSignature(context.Background(), "tpl_9", ContractPDF, map[string]interface{}{"name": "Jo"})
	require.NoError(t, err)

	req := api.last()
	assert.Equal(t, "tpl_9", req.form.Get("template_id"))
	assert.Equal(t, "HTML", req.form.Get("contract_format"))
	assert.JSONEq(t, `{"name":"Override"}`, req.form.Get("contract_prefill_data"))
}

func TestDocuPassValidate(t *testing.T) {
	api := newFakeAPI(t)
	dp := newTestDocuPass(t, api)
	dp.SetCustomID("user-1")
	ctx := context.Background()

	api.respond(200, map[string]interface{}{"success": true})
	ok, err := dp.Validate(ctx, "REF123", "hash456")
	require.NoError(t, err)
	assert.True(t, ok)

	req := api.last()
	assert.Equal(t, "/docupass/validate", req.path)
	assert.Equal(t, "REF123", req.form.Get("reference"))
	assert.Equal(t, "hash456", req.form.Get("hash"))
	assert.Equal(t, "test-key", req.form.Get("apikey"))
	assert.Equal(t, "go-sdk", req.form.Get("client"))
	assert.Len(t, req.form, 4)

	dp.ThrowAPIError(true)
	api.respond(200, map[string]interface{}{"error": map[string]interface{}{"code": 1, "message": "bad hash"}})
	ok, err = dp.Validate(ctx, "REF123", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = dp.Validate(ctx, "", "h")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDocuPassResetKeepsCompany(t *testing.T) {
	dp, err := NewDocuPass("k", "ACME", "US")
	require.NoError(t, err)
	dp.SetCustomID("x")
	dp.ResetConfig()

	v, _ := dp.Parameter("companyname")
	assert.Equal(t, "ACME", v)
	v, _ = dp.Parameter("customid")
	assert.Equal(t, "", v)
}
