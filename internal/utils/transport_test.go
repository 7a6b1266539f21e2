package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leofalp/mmdraft/providers/ai"
)

func TestNewHTTPClient_VerifiesCertificatesByDefault(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"value":1}`)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPClientOptions{})

	_, _, err := DoPostSync[valueResponse](context.Background(), client, server.URL, "", struct{}{})
	if !errors.Is(err, ai.ErrNetwork) {
		t.Fatalf("expected a certificate error wrapped in ErrNetwork, got %v", err)
	}
}

func TestNewHTTPClient_InsecureSkipVerify(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"value":1}`)
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPClientOptions{InsecureSkipVerify: true})

	_, result, err := DoPostSync[valueResponse](context.Background(), client, server.URL, "", struct{}{})
	if err != nil {
		t.Fatalf("expected self-signed certificate to be accepted, got %v", err)
	}
	if result.Value != 1 {
		t.Errorf("expected Value=1, got %d", result.Value)
	}
}

func TestNewHTTPClient_DoesNotMutateDefaultTransport(t *testing.T) {
	_ = NewHTTPClient(HTTPClientOptions{InsecureSkipVerify: true})

	tlsConfig := http.DefaultTransport.(*http.Transport).TLSClientConfig
	if tlsConfig != nil && tlsConfig.InsecureSkipVerify {
		t.Error("default transport must keep certificate verification")
	}
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	client := NewHTTPClient(HTTPClientOptions{Timeout: 3 * time.Second})
	if client.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", client.Timeout)
	}
}
