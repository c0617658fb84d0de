package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lemonberrylabs/roundscript/pkg/api"
	"github.com/lemonberrylabs/roundscript/pkg/store"
)

// testServer holds the base URL of a running check service.
var testServer string

// TestMain targets ROUNDC_URL when set. Otherwise it starts an in-process
// server on a loopback port, preloaded from testdata/programs.
func TestMain(m *testing.M) {
	testServer = os.Getenv("ROUNDC_URL")
	if testServer != "" {
		if !strings.HasPrefix(testServer, "http://") && !strings.HasPrefix(testServer, "https://") {
			testServer = "http://" + testServer
		}
		os.Exit(m.Run())
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("listen: %v", err)
	}

	server := api.New(store.New(0), api.Options{})
	if err := server.LoadDir(filepath.Join("testdata", "programs")); err != nil {
		log.Fatalf("loading programs: %v", err)
	}
	go func() {
		if err := server.Serve(ln); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()
	testServer = "http://" + ln.Addr().String()

	code := m.Run()
	if err := server.Shutdown(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	os.Exit(code)
}

// apiURL builds a full URL for the given API path.
func apiURL(path string) string {
	return strings.TrimRight(testServer, "/") + "/v1/" + path
}

// loadDocument reads a token document from testdata/programs.
func loadDocument(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "programs", name))
	if err != nil {
		t.Fatalf("failed to load document %s: %v", name, err)
	}
	return data
}

// doJSON sends a request and decodes the JSON response body, if any.
func doJSON(t *testing.T, method, url, contentType string, body []byte) (int, map[string]interface{}) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("HTTP error: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			t.Fatalf("invalid JSON response %q: %v", data, err)
		}
	}
	return resp.StatusCode, result
}

// createProgram stores a token document and returns the new program's ID.
func createProgram(t *testing.T, name string, doc []byte) string {
	t.Helper()
	code, result := doJSON(t, http.MethodPost, apiURL("programs")+"?name="+name, "application/yaml", doc)
	if code != http.StatusCreated {
		t.Fatalf("create program: expected 201, got %d: %v", code, result)
	}
	id, _ := result["id"].(string)
	if id == "" {
		t.Fatalf("create program: missing id in %v", result)
	}
	t.Cleanup(func() {
		doJSON(t, http.MethodDelete, apiURL("programs/"+id), "", nil)
	})
	return id
}

// errorField returns a field of the response's error object.
func errorField(result map[string]interface{}, key string) string {
	errObj, _ := result["error"].(map[string]interface{})
	return fmt.Sprint(errObj[key])
}
