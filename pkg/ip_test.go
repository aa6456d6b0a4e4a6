package pkg

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUserIP(t *testing.T) {
	cases := []struct {
		name          string
		remoteAddr    string
		realIP        string
		forwardedFor  string
		expectedIP    string
		expectedError bool
	}{
		{name: "remote addr with port", remoteAddr: "83.12.53.65:2145", expectedIP: "83.12.53.65"},
		{name: "real ip header", remoteAddr: "10.0.0.1:80", realIP: "111.12.56.65", expectedIP: "111.12.56.65"},
		{name: "forwarded for chain", remoteAddr: "10.0.0.1:80", forwardedFor: "172.19.0.1, 10.0.0.2", expectedIP: "172.19.0.1"},
		{name: "ipv6", remoteAddr: "[::1]:8080", expectedIP: "::1"},
		{name: "garbage", remoteAddr: "not-an-ip", expectedError: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.realIP != "" {
				req.Header.Set("X-Real-Ip", tc.realIP)
			}
			if tc.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tc.forwardedFor)
			}

			ip, err := ReadUserIP(req)
			if tc.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedIP, ip)
		})
	}
}
