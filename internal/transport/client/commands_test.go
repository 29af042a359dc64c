package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmullins/linkgen/internal/domain"
)

// captureOutput captures stdout for testing print statements
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	// Create a pipe to capture stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)

	// Save original stdout and restore it later
	origStdout := os.Stdout
	os.Stdout = w

	// Create a channel to read the output
	outputChan := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outputChan <- buf.String()
	}()

	// Execute the function
	fn()

	// Close writer and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read the captured output
	output := <-outputChan
	r.Close()

	return output
}

func TestNewCommands(t *testing.T) {
	client := NewClient("http://localhost:8080")
	commands := NewCommands(client)

	assert.NotNil(t, commands)
	assert.Equal(t, client, commands.client)
}

func TestCommands_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		expectedResponse := domain.CreateLinkResponse{
			Key:       "vq5ejng0p6",
			ShortURL:  "http://localhost:8080/vq5ejng0p6",
			TargetURL: "https://example.com",
			CreatedAt: time.Now(),
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(expectedResponse)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		commands := NewCommands(client)

		output := captureOutput(t, func() {
			err := commands.Create(context.Background(), "https://example.com", "")
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "Short link created")
		assert.Contains(t, output, "vq5ejng0p6")
		assert.Contains(t, output, "http://localhost:8080/vq5ejng0p6")
	})

	t.Run("creation with QR file", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req domain.CreateLinkRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.True(t, req.QR)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(domain.CreateLinkResponse{
				Key:   "vq5ejng0p6",
				QRPNG: []byte("png-bytes"),
			})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		commands := NewCommands(client)

		qrPath := filepath.Join(t.TempDir(), "qr.png")
		output := captureOutput(t, func() {
			err := commands.Create(context.Background(), "https://example.com", qrPath)
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "QR image written to")

		data, err := os.ReadFile(qrPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("server omits QR image", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(domain.CreateLinkResponse{Key: "vq5ejng0p6"})
		}))
		defer server.Close()

		client := NewClient(server.URL)
		commands := NewCommands(client)

		qrPath := filepath.Join(t.TempDir(), "qr.png")
		captureOutput(t, func() {
			err := commands.Create(context.Background(), "https://example.com", qrPath)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "did not return a QR image")
		})
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		commands := NewCommands(client)

		err := commands.Create(context.Background(), "invalid-url", "")
		assert.Error(t, err)
	})
}

func TestCommands_Get(t *testing.T) {
	t.Run("existing key", func(t *testing.T) {
		lastHit := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(domain.LinkEntry{
				Key:       "vq5ejng0p6",
				TargetURL: "https://example.com",
				CreatedAt: time.Now(),
				LastHitAt: &lastHit,
				HitCount:  7,
			})
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		output := captureOutput(t, func() {
			err := commands.Get(context.Background(), "vq5ejng0p6")
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "Link Information")
		assert.Contains(t, output, "https://example.com")
		assert.Contains(t, output, "Hit Count: 7")
	})

	t.Run("never hit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(domain.LinkEntry{
				Key:       "vq5ejng0p6",
				TargetURL: "https://example.com",
				CreatedAt: time.Now(),
			})
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		output := captureOutput(t, func() {
			err := commands.Get(context.Background(), "vq5ejng0p6")
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "Last Hit At: Never")
	})

	t.Run("unknown key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		output := captureOutput(t, func() {
			err := commands.Get(context.Background(), "missing")
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "Key 'missing' not found")
	})
}

func TestCommands_QR(t *testing.T) {
	t.Run("writes PNG to file", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png-bytes"))
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		qrPath := filepath.Join(t.TempDir(), "qr.png")
		output := captureOutput(t, func() {
			err := commands.QR(context.Background(), "vq5ejng0p6", qrPath)
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "QR image written to")

		data, err := os.ReadFile(qrPath)
		require.NoError(t, err)
		assert.Equal(t, []byte("png-bytes"), data)
	})

	t.Run("unknown key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		output := captureOutput(t, func() {
			err := commands.QR(context.Background(), "missing", filepath.Join(t.TempDir(), "qr.png"))
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "Key 'missing' not found")
	})
}

func TestCommands_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		output := captureOutput(t, func() {
			err := commands.Delete(context.Background(), "vq5ejng0p6")
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "deleted successfully")
	})

	t.Run("unknown key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		output := captureOutput(t, func() {
			err := commands.Delete(context.Background(), "missing")
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "Key 'missing' not found")
	})
}

func TestCommands_List(t *testing.T) {
	t.Run("with entries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]*domain.LinkEntry{
				{Key: "vq5ejng0p6", TargetURL: "https://example.com", CreatedAt: time.Now()},
				{Key: "957dkwdw8j", TargetURL: "https://example.org", CreatedAt: time.Now()},
			})
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		output := captureOutput(t, func() {
			err := commands.List(context.Background())
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "vq5ejng0p6")
		assert.Contains(t, output, "957dkwdw8j")
		assert.Contains(t, output, "Hit Count")
	})

	t.Run("empty list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]*domain.LinkEntry{})
		}))
		defer server.Close()

		commands := NewCommands(NewClient(server.URL))

		output := captureOutput(t, func() {
			err := commands.List(context.Background())
			assert.NoError(t, err)
		})

		assert.Contains(t, output, "No links found")
	})
}
