// Copyright © 2021 Io FinNet Group, Inc.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iofinnet/dhlab/config"
	"github.com/iofinnet/dhlab/dh"
	"github.com/iofinnet/dhlab/test"
)

type response struct {
	status int
	body   map[string]interface{}
}

func do(t *testing.T, s *Server, method, path, body string, header ...string) response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded), rr.Body.String())
	return response{status: rr.Code, body: decoded}
}

func post(t *testing.T, s *Server, path, body string) response {
	t.Helper()
	return do(t, s, http.MethodPost, path, body)
}

func TestNumericExchangeEndpoints(t *testing.T) {
	s := New(config.Default())

	res := post(t, s, "/set_params", `{"prime": "23", "generator": "5"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "ok", res.body["status"])
	assert.Equal(t, float64(23), res.body["p"])
	assert.Equal(t, float64(5), res.body["g"])
	assert.Equal(t, float64(22), res.body["order"])
	assert.Equal(t, true, res.body["primitiveRoot"])

	for _, ex := range test.Exchanges {
		res = post(t, s, "/public_key", fmt.Sprintf(`{"prime": "%d", "generator": "%d", "secret": "%d"}`, ex.Modulus, ex.Generator, ex.SecretA))
		require.Equal(t, http.StatusOK, res.status, ex.Name)
		assert.Equal(t, float64(ex.PublicA), res.body["public"], ex.Name)

		// numbers may also arrive as JSON integers
		res = post(t, s, "/public_key", fmt.Sprintf(`{"prime": %d, "generator": %d, "secret": %d}`, ex.Modulus, ex.Generator, ex.SecretB))
		require.Equal(t, http.StatusOK, res.status, ex.Name)
		assert.Equal(t, float64(ex.PublicB), res.body["public"], ex.Name)

		res = post(t, s, "/shared_secret", fmt.Sprintf(`{"prime": "%d", "secret": "%d", "received_public": "%d"}`, ex.Modulus, ex.SecretA, ex.PublicB))
		require.Equal(t, http.StatusOK, res.status, ex.Name)
		assert.Equal(t, float64(ex.Shared), res.body["shared"], ex.Name)

		res = post(t, s, "/shared_secret", fmt.Sprintf(`{"prime": "%d", "secret": "%d", "received_public": "%d"}`, ex.Modulus, ex.SecretB, ex.PublicA))
		require.Equal(t, http.StatusOK, res.status, ex.Name)
		assert.Equal(t, float64(ex.Shared), res.body["shared"], ex.Name)
	}
}

func TestDiscreteEndpoints(t *testing.T) {
	s := New(config.Default())

	res := post(t, s, "/api/discrete_exp", `{"base": "5", "exp": "6", "mod": "23"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, float64(8), res.body["result"])

	res = post(t, s, "/api/discrete_exp", `{"base": "5", "exp": "6", "mod": "1"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, float64(0), res.body["result"])

	res = post(t, s, "/api/discrete_log", `{"base": "5", "result": "8", "mod": "23"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, float64(6), res.body["log"])

	res = post(t, s, "/api/discrete_log", `{"base": "2", "result": "5", "mod": "23"}`)
	assert.Equal(t, http.StatusNotFound, res.status)
	assert.Equal(t, string(dh.KindNoSolutionFound), res.body["kind"])
	assert.Equal(t, "No exponent x found.", res.body["error"])

	res = post(t, s, "/api/discrete_log", `{"base": "2", "result": "5", "mod": "10001"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, string(dh.KindModulusTooLarge), res.body["kind"])
	assert.Contains(t, res.body["error"], "smaller modulus")
}

func TestSuggestEndpoint(t *testing.T) {
	s := New(config.Default())

	res := post(t, s, "/api/suggest_params", `{"bits": 12}`)
	require.Equal(t, http.StatusOK, res.status)
	p := res.body["p"].(float64)
	assert.True(t, p >= 1<<11 && p < 1<<12, "p=%v", p)
	assert.Equal(t, p-1, res.body["order"])
	assert.Equal(t, true, res.body["primitiveRoot"])
	assert.Contains(t, res.body, "secretA")
	assert.Contains(t, res.body, "secretB")

	res = post(t, s, "/api/suggest_params", `{}`)
	require.Equal(t, http.StatusOK, res.status)

	res = post(t, s, "/api/suggest_params", `{"bits": "40"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, string(dh.KindTooLarge), res.body["kind"])
	assert.Equal(t, "bits must be between 4 and 19.", res.body["error"])
}

func TestColorEndpoints(t *testing.T) {
	s := New(config.Default())

	res := post(t, s, "/set_base", `{"baseColor": "#FFFF00"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "ok", res.body["status"])
	assert.Equal(t, "#FFFF00", res.body["confirmedColor"])

	res = post(t, s, "/mix", `{"color1": "#000000", "color2": "#ffffff"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "#7f7f7f", res.body["mixedColor"])
	assert.Equal(t, []interface{}{"#000000", "#ffffff"}, res.body["components"])

	res = post(t, s, "/final", `{"baseColor": "#ffff00", "aliceSecret": "#ff0000", "bobSecret": "#00ff00"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "#bfbf00", res.body["finalColor"])
	assert.Equal(t, "#7f7f00", res.body["intermediate"])
	assert.Equal(t, []interface{}{"#ffff00", "#ff0000", "#00ff00"}, res.body["components"])

	res = post(t, s, "/mix", `{"color1": "#000000", "color2": "white"}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "color2 must be a #RRGGBB hex color.", res.body["error"])

	res = post(t, s, "/set_base", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.status)
}

func TestValidationErrors(t *testing.T) {
	s := New(config.Default())
	tests := []struct {
		name     string
		path     string
		body     string
		wantKind dh.ErrorKind
		wantMsg  string
	}{{
		name:     "composite modulus",
		path:     "/set_params",
		body:     `{"prime": "4", "generator": "2"}`,
		wantKind: dh.KindInvalidGroup,
		wantMsg:  "p must be prime and 1 < g < p.",
	}, {
		name:     "modulus above ceiling",
		path:     "/set_params",
		body:     `{"prime": "1000003", "generator": "2"}`,
		wantKind: dh.KindTooLarge,
		wantMsg:  "Number too large: prime must not exceed 1,000,000.",
	}, {
		name:     "malformed prime",
		path:     "/public_key",
		body:     `{"prime": "abc", "generator": "5", "secret": "6"}`,
		wantKind: dh.KindInvalidFormat,
		wantMsg:  "prime must be a positive integer.",
	}, {
		name:     "malformed prime on shared secret",
		path:     "/shared_secret",
		body:     `{"prime": "x", "secret": "6", "received_public": "8"}`,
		wantKind: dh.KindInvalidFormat,
		wantMsg:  "prime must be a positive integer.",
	}, {
		name:     "malformed exp",
		path:     "/api/discrete_exp",
		body:     `{"base": "5", "exp": "abc", "mod": "23"}`,
		wantKind: dh.KindInvalidFormat,
		wantMsg:  "exp must be a positive integer.",
	}, {
		name:     "malformed mod",
		path:     "/api/discrete_exp",
		body:     `{"base": "5", "exp": "6", "mod": "abc"}`,
		wantKind: dh.KindInvalidFormat,
		wantMsg:  "mod must be a positive integer.",
	}, {
		name:     "malformed mod on discrete log",
		path:     "/api/discrete_log",
		body:     `{"base": "5", "result": "8", "mod": "-1"}`,
		wantKind: dh.KindInvalidFormat,
		wantMsg:  "mod must be a positive integer.",
	}, {
		name:     "oversized exp and mod",
		path:     "/api/discrete_exp",
		body:     fmt.Sprintf(`{"base": "3", "exp": "%s", "mod": "%s"}`, strings.Repeat("9", 15000), strings.Repeat("7", 15000)),
		wantKind: dh.KindTooLarge,
		wantMsg:  "Number too large: exp must have at most 1,024 digits.",
	}, {
		name:     "oversized secret",
		path:     "/public_key",
		body:     fmt.Sprintf(`{"prime": "23", "generator": "5", "secret": "%s"}`, strings.Repeat("9", 15000)),
		wantKind: dh.KindTooLarge,
		wantMsg:  "Number too large: secret must have at most 1,024 digits.",
	}, {
		name:     "oversized received public",
		path:     "/shared_secret",
		body:     fmt.Sprintf(`{"prime": "23", "secret": "6", "received_public": %s}`, strings.Repeat("9", 15000)),
		wantKind: dh.KindTooLarge,
	}, {
		name:     "missing generator",
		path:     "/set_params",
		body:     `{"prime": "23"}`,
		wantKind: dh.KindInvalidFormat,
		wantMsg:  "generator must be a positive integer.",
	}, {
		name:     "negative JSON number",
		path:     "/public_key",
		body:     `{"prime": 23, "generator": 5, "secret": -6}`,
		wantKind: dh.KindInvalidFormat,
		wantMsg:  "secret must be a positive integer.",
	}, {
		name:     "fractional JSON number",
		path:     "/api/discrete_exp",
		body:     `{"base": 2.5, "exp": 2, "mod": 7}`,
		wantKind: dh.KindInvalidFormat,
	}, {
		name:     "zero secret",
		path:     "/shared_secret",
		body:     `{"prime": "23", "secret": "0", "received_public": "8"}`,
		wantKind: dh.KindInvalidFormat,
	}, {
		name:     "malformed JSON",
		path:     "/public_key",
		body:     `{"prime": `,
		wantKind: dh.KindInvalidFormat,
		wantMsg:  "The request body must be a JSON object.",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := post(t, s, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, res.status)
			assert.Equal(t, string(tt.wantKind), res.body["kind"])
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, res.body["error"])
			}
		})
	}
}

func TestLocalizedMessages(t *testing.T) {
	s := New(config.Default())
	body := `{"prime": "4", "generator": "2"}`

	res := do(t, s, http.MethodPost, "/set_params", body, "Accept-Language", "de-DE,de;q=0.9,en;q=0.5")
	assert.Equal(t, "p muss prim sein und 1 < g < p.", res.body["error"])

	res = do(t, s, http.MethodPost, "/set_params", body, "Accept-Language", "fr-FR")
	assert.Equal(t, "p must be prime and 1 < g < p.", res.body["error"])

	res = do(t, s, http.MethodPost, "/api/discrete_log", `{"base": "2", "result": "5", "mod": "23"}`, "Accept-Language", "de")
	assert.Equal(t, "Kein Exponent x gefunden.", res.body["error"])

	cfg := config.Default()
	cfg.Language = "de"
	german := New(cfg)
	res = post(t, german, "/set_params", body)
	assert.Equal(t, "p muss prim sein und 1 < g < p.", res.body["error"])

	res = post(t, german, "/api/discrete_exp", fmt.Sprintf(`{"base": "3", "exp": "%s", "mod": "7"}`, strings.Repeat("9", 2000)))
	assert.Equal(t, "Zahl zu groß: exp darf höchstens 1.024 Ziffern haben.", res.body["error"])
}

func TestMethodNotAllowed(t *testing.T) {
	s := New(config.Default())
	res := do(t, s, http.MethodGet, "/mix", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.status)
	assert.Equal(t, "Method not allowed.", res.body["error"])

	res = do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "ok", res.body["status"])
}

func TestInternalFaultsAreDistinct(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("overflow")))
	assert.Equal(t, http.StatusNotFound, statusFor(dh.NewError(dh.KindNoSolutionFound, "", "", nil)))
	assert.Equal(t, http.StatusBadRequest, statusFor(dh.NewError(dh.KindInvalidGroup, "", "", nil)))

	s := New(config.Default())
	h := s.recoverPanics(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("unexpected")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
	assert.NotContains(t, body, "kind")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.ShutdownTimeout = time.Second
	s := New(cfg)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
