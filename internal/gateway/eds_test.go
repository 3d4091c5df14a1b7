package gateway_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rigalabs/invoice-manager/internal/gateway"
)

func TestSubmit_Success(t *testing.T) {
	var gotKey string
	var gotFile []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "invoice.xml", header.Filename)
		gotFile, err = io.ReadAll(file)
		require.NoError(t, err)

		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := gateway.NewClient("secret-key", gateway.WithURL(srv.URL))
	err := client.Submit(context.Background(), []byte("<Invoice/>"))
	require.NoError(t, err)

	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, []byte("<Invoice/>"), gotFile)
}

func TestSubmit_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, "schema validation failed: missing cbc:ID")
	}))
	defer srv.Close()

	client := gateway.NewClient("secret-key", gateway.WithURL(srv.URL))
	err := client.Submit(context.Background(), []byte("<Invoice/>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "schema validation failed: missing cbc:ID")
}

func TestSubmit_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := gateway.NewClient("secret-key", gateway.WithURL(srv.URL))
	err := client.Submit(context.Background(), []byte("<Invoice/>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}

func TestSubmit_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := gateway.NewClient("secret-key", gateway.WithURL(srv.URL))
	err := client.Submit(ctx, []byte("<Invoice/>"))
	assert.Error(t, err)
}
