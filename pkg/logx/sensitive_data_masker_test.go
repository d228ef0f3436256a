package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"flashsale/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Access token",
			input:  []byte(`{"accessToken":"eyJhbGciOiJFUzI1NiIsInR5cC","refreshToken":"eyJhbGciOiJFUzI1NiIsInR5cCI6IkpXVCJ9"}`),
			output: []byte(`{"accessToken":"[MASKED]","refreshToken":"[MASKED]"}`),
		},
		{
			name:   "Email",
			input:  []byte(`{"email": "john@doe.com", "isMarketingConsentPermitted": true}`),
			output: []byte(`{"email": "[MASKED]", "isMarketingConsentPermitted": true}`),
		},
		{
			name:   "Nothing sensitive",
			input:  []byte(`{"product_name":"iPhone 13 Pro","final_price":999.99}`),
			output: []byte(`{"product_name":"iPhone 13 Pro","final_price":999.99}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}

func TestNopSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewNopSensitiveDataMasker()

	input := []byte(`{"password":"abc123"}`)

	rq.Equal(input, masker.Mask(input))
}
