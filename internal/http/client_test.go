package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	icashhttp "github.com/codelabbj/icash-admin/internal/http"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingToken struct{}

func (failingToken) GetToken(ctx context.Context) (string, error) {
	return "", errors.New("token store locked")
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

func fastRetries(n int) icashhttp.Option {
	return icashhttp.WithRetryConfig(n, time.Millisecond, 5*time.Millisecond)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/mobcash/network", request.URL.Path)
			assert.Equal(t, http.MethodGet, request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Empty(t, request.Header.Get("Content-Type"))

			_, _ = writer.Write([]byte(`[{"id":1,"name":"MTN"}]`))
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, icashhttp.StaticToken("test-token"))

		resp, err := client.Do(context.Background(), &icashhttp.Request{
			Method: http.MethodGet,
			Path:   "/mobcash/network",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[{"id":1,"name":"MTN"}]`, string(resp.Body))
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "enable=true&page=2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/mobcash/plateform", url.Values{
			"page":   []string{"2"},
			"enable": []string{"true"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPatch, request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			body, _ := io.ReadAll(request.Body)
			assert.JSONEq(t, `{"enable":false}`, string(body))

			_, _ = writer.Write([]byte(`{"id":4,"enable":false}`))
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, nil)
		enable := false

		resp, err := client.Patch(context.Background(), "/mobcash/network/4", &mobcash.NetworkPatch{Enable: &enable})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("no authorization without token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, icashhttp.StaticToken(""))

		resp, err := client.Delete(context.Background(), "/mobcash/ads/3")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("token failure stops the request", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, failingToken{})

		_, err := client.Get(context.Background(), "/mobcash/bonus", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting token")
		assert.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusBadRequest)
			_, _ = writer.Write([]byte(`{"phone":["Ce champ est obligatoire."]}`))
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/mobcash/user-phone/", &mobcash.TelephoneInput{Network: 1})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var respErr *mobcash.ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, []string{"Ce champ est obligatoire."}, respErr.Fields["phone"])
		assert.True(t, mobcash.IsValidation(err))
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
		serverURL := server.URL
		server.Close()

		client := icashhttp.NewClient(serverURL, nil)

		resp, err := client.Get(context.Background(), "/mobcash/network", nil)
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, mobcash.IsTransport(err))
		assert.Equal(t, "Erreur de connexion au serveur", mobcash.UserMessage(err))
	})
}

func TestClient_Retries(t *testing.T) {
	t.Parallel()

	t.Run("GET retries server errors", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				writer.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			_, _ = writer.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, nil, fastRetries(3))

		resp, err := client.Get(context.Background(), "/mobcash/caisses", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("GET retries are bounded", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&calls, 1)
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, nil, fastRetries(2))

		_, err := client.Get(context.Background(), "/mobcash/caisses", nil)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, mobcash.StatusCode(err))
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("GET does not retry client errors", func(t *testing.T) {
		t.Parallel()

		var calls int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&calls, 1)
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"detail":"Pas trouvé."}`))
		}))
		defer server.Close()

		client := icashhttp.NewClient(server.URL, nil, fastRetries(3))

		_, err := client.Get(context.Background(), "/mobcash/network/99", nil)
		require.Error(t, err)
		assert.True(t, mobcash.IsNotFound(err))
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		t.Run(method+" is never retried", func(t *testing.T) {
			t.Parallel()

			var calls int32

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				atomic.AddInt32(&calls, 1)
				writer.WriteHeader(http.StatusBadGateway)
			}))
			defer server.Close()

			client := icashhttp.NewClient(server.URL, nil, fastRetries(3))

			_, err := client.Do(context.Background(), &icashhttp.Request{
				Method: method,
				Path:   "/mobcash/deposit",
				Body:   map[string]int{"amount": 1000},
			})
			require.Error(t, err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base string
		path string
		want string
	}{
		{"https://api.zefast.net/", "/mobcash/network", "https://api.zefast.net/mobcash/network"},
		{"https://api.zefast.net", "mobcash/network", "https://api.zefast.net/mobcash/network"},
		{"https://api.zefast.net//", "//mobcash/user-phone/", "https://api.zefast.net/mobcash/user-phone/"},
	}

	for _, tc := range tests {
		client := icashhttp.NewClient(tc.base, nil)
		assert.Equal(t, tc.want, client.URL(tc.path, nil))
	}

	client := icashhttp.NewClient("https://api.zefast.net/", nil)
	assert.Equal(t,
		"https://api.zefast.net/mobcash/notification?user_id=u-1",
		client.URL("/mobcash/notification", url.Values{"user_id": []string{"u-1"}}),
	)
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`[]`))
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := icashhttp.NewClient(server.URL, nil, icashhttp.WithLogger(logger), icashhttp.WithDebug(true))

	_, err := client.Get(context.Background(), "/mobcash/bonus", nil)
	require.NoError(t, err)

	require.Len(t, logger.logs, 2)
	assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
	assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])

	fields, ok := logger.logs[1]["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, fields["status"])

	quiet := &MockLogger{}
	client = icashhttp.NewClient(server.URL, nil, icashhttp.WithLogger(quiet))

	_, err = client.Get(context.Background(), "/mobcash/bonus", nil)
	require.NoError(t, err)
	assert.Empty(t, quiet.logs)
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.NotEmpty(t, request.Header.Get(mobcash.RequestIDHeader))
		assert.Equal(t, "icash-test", request.Header.Get("User-Agent"))
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	collector := mobcash.NewMetricsCollector()
	chain := mobcash.NewInterceptorChain()
	chain.AddRequestInterceptor(mobcash.RequestIDInterceptor())
	chain.AddRequestInterceptor(mobcash.MetricsRequestInterceptor(collector))
	chain.AddResponseInterceptor(mobcash.MetricsResponseInterceptor(collector))

	client := icashhttp.NewClient(server.URL, nil,
		icashhttp.WithInterceptors(chain),
		icashhttp.WithUserAgent("icash-test"),
	)

	_, err := client.Get(context.Background(), "/mobcash/recharge", nil)
	require.Error(t, err)

	metrics := collector.GetMetrics("GET /mobcash/recharge")
	require.NotNil(t, metrics)
	assert.Equal(t, int64(1), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
}

func TestClient_PostMultipart(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data"))

		file, header, err := request.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}

		defer func() { _ = file.Close() }()

		content, _ := io.ReadAll(file)
		assert.Equal(t, "proof.png", header.Filename)
		assert.Equal(t, "png-bytes", string(content))

		_ = json.NewEncoder(writer).Encode(mobcash.UploadResult{URL: "https://cdn.zefast.net/proof.png"})
	}))
	defer server.Close()

	client := icashhttp.NewClient(server.URL, nil)

	resp, err := client.PostMultipart(context.Background(), "/mobcash/upload", "file", "proof.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Contains(t, string(resp.Body), "cdn.zefast.net")
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	// The default transport does not trust the test certificate.
	_, err := icashhttp.NewClient(server.URL, nil).Get(context.Background(), "/mobcash/coupon", nil)
	require.Error(t, err)

	client := icashhttp.NewClient(server.URL, nil, icashhttp.WithHTTPClient(server.Client()))

	resp, err := client.Get(context.Background(), "/mobcash/coupon", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(resp.Body))
}
