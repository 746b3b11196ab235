package figma

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func buttonContextHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		if req.JSONRPC != "2.0" || req.Method != "tools/call" {
			t.Errorf("unexpected envelope: %+v", req)
		}
		if req.Params.Name != "get_design_context" {
			t.Errorf("unexpected tool name %q", req.Params.Name)
		}
		if req.Params.Arguments["nodeId"] != "1:23" {
			t.Errorf("unexpected arguments: %v", req.Params.Arguments)
		}
		if req.ID == 0 {
			t.Error("request id must be set")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"node": map[string]any{"id": "1:23", "name": "Button"},
				"componentProperties": []map[string]any{
					{"name": "size", "type": "VARIANT", "defaultValue": "md", "variantOptions": []string{"sm", "md", "lg"}, "required": true},
					{"name": "color", "type": "VARIANT", "defaultValue": "primary", "variantOptions": []string{"primary", "secondary"}, "required": true},
					{"name": "icon", "type": "TEXT", "defaultValue": "", "required": false},
					{"name": "disabled", "type": "BOOLEAN", "defaultValue": false, "required": false},
				},
				"tokens":     map[string]any{"cornerRadius": 4, "itemSpacing": 8},
				"typography": map[string]any{"fontFamily": "Inter"},
			},
		})
	}
}

func TestExtract(t *testing.T) {
	server := httptest.NewServer(buttonContextHandler(t))
	defer server.Close()

	client, err := New(server.URL, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatal(err)
	}

	c, err := client.Extract(context.Background(), "Button", "1:23")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if c.ComponentID() != "button" || c.SourceID() != "1:23" {
		t.Errorf("unexpected identity: %q %q", c.ComponentID(), c.SourceID())
	}
	size, ok := c.Lookup("size")
	if !ok || size.Kind.String() != "enum" || !size.Required {
		t.Errorf("unexpected size spec: %+v", size)
	}
	if got := c.AllowedValues("size"); len(got) != 3 || got[0] != "sm" || got[2] != "lg" {
		t.Errorf("allowed values lost payload order: %v", got)
	}
	disabled, _ := c.Lookup("disabled")
	if disabled.Default != false {
		t.Errorf("boolean default lost: %v", disabled.Default)
	}
	if c.DesignTokens()["itemSpacing"] == nil {
		t.Error("design tokens not carried onto the contract")
	}
}

func TestExtract_Idempotent(t *testing.T) {
	server := httptest.NewServer(buttonContextHandler(t))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))

	a, err := client.Extract(context.Background(), "Button", "1:23")
	if err != nil {
		t.Fatal(err)
	}
	b, err := client.Extract(context.Background(), "Button", "1:23")
	if err != nil {
		t.Fatal(err)
	}

	if !a.SameVersion(b) {
		t.Error("re-extraction of unchanged design state must yield the same contract version")
	}
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	sa := strings.Replace(string(ja), a.ExtractedAt().Format(time.RFC3339), "T", 1)
	sb := strings.Replace(string(jb), b.ExtractedAt().Format(time.RFC3339), "T", 1)
	if sa != sb {
		t.Errorf("artifacts differ beyond extractedAt:\n%s\n%s", sa, sb)
	}
}

func TestExtract_ProtocolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "no node is currently selected"},
		})
	}))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))
	_, err := client.Extract(context.Background(), "Button", "1:23")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsProtocolError(err) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if err.Error() != "no node is currently selected" {
		t.Errorf("service message must be surfaced verbatim, got %q", err.Error())
	}
	if IsConnectionError(err) {
		t.Error("protocol errors must be distinguishable from connection errors")
	}
}

func TestExtract_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, _ := New(url)
	_, err := client.Extract(context.Background(), "Button", "1:23")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsConnectionError(err) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"unreachable", "query service", "selected"} {
		if !strings.Contains(msg, want) {
			t.Errorf("connection error should tell the user what to do; missing %q in %q", want, msg)
		}
	}
}

func TestExtract_TimeoutIsConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client, _ := New(server.URL, WithTimeout(20*time.Millisecond))
	_, err := client.Extract(context.Background(), "Button", "1:23")
	if !IsConnectionError(err) {
		t.Fatalf("expected ConnectionError on timeout, got %v", err)
	}
}

func TestExtract_UnmappedTypeFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"node": map[string]any{"id": "1:23", "name": "Button"},
				"componentProperties": []map[string]any{
					{"name": "size", "type": "VARIANT", "defaultValue": "md", "variantOptions": []string{"sm", "md"}},
					{"name": "leading", "type": "INSTANCE_SWAP", "defaultValue": "icon-arrow"},
				},
			},
		})
	}))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))
	_, err := client.Extract(context.Background(), "Button", "1:23")
	if err == nil {
		t.Fatal("expected extraction to fail on unmapped property type")
	}
	if !errors.Is(err, ErrUnmappedType) {
		t.Fatalf("expected ErrUnmappedType, got %v", err)
	}
	if !strings.Contains(err.Error(), "leading") {
		t.Errorf("error should name the offending property: %v", err)
	}
}

func TestExtract_MissingResultAndError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, _ := New(server.URL, WithHTTPClient(server.Client()))
	_, err := client.Extract(context.Background(), "Button", "1:23")
	if err == nil {
		t.Fatal("expected error for empty response")
	}
	if IsConnectionError(err) || IsProtocolError(err) {
		t.Errorf("malformed response is neither connection nor protocol error: %v", err)
	}
}

func TestNew_DefaultBaseURL(t *testing.T) {
	client, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("empty base URL should select the fixed loopback address, got %q", client.baseURL)
	}
}
