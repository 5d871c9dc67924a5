package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/model"
)

// LoadValues reads a JSON fixture into form values.
func LoadValues(path string) (model.Values, error) {
	if path == "" {
		return model.Values{}, errors.New("testsupport: values path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Values{}, fmt.Errorf("testsupport: read values: %w", err)
	}
	var out model.Values
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Values{}, fmt.Errorf("testsupport: unmarshal values: %w", err)
	}
	return out, nil
}

// MustLoadValues is LoadValues for tests.
func MustLoadValues(t *testing.T, path string) model.Values {
	t.Helper()

	values, err := LoadValues(path)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	return values
}

// WriteGolden writes arbitrary data to a golden file as JSON when
// UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	return out, buf.String()
}

// RecordingSink keeps every payload it receives. Err, when set, is returned
// from each Send after the payload is recorded.
type RecordingSink struct {
	mu       sync.Mutex
	payloads []model.Payload
	Err      error
}

// Send records payload.
func (s *RecordingSink) Send(_ context.Context, payload model.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, payload)
	return s.Err
}

// Payloads returns a copy of the recorded payloads.
func (s *RecordingSink) Payloads() []model.Payload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Payload(nil), s.payloads...)
}

// RecordingView keeps every field and banner update in arrival order.
type RecordingView struct {
	mu      sync.Mutex
	fields  []model.Field
	banners []bool
}

// FieldUpdated records field.
func (v *RecordingView) FieldUpdated(field model.Field) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields = append(v.fields, field)
}

// BannerUpdated records visible.
func (v *RecordingView) BannerUpdated(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.banners = append(v.banners, visible)
}

// Fields returns the recorded field updates.
func (v *RecordingView) Fields() []model.Field {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]model.Field(nil), v.fields...)
}

// Banners returns the recorded banner updates.
func (v *RecordingView) Banners() []bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]bool(nil), v.banners...)
}

// Last returns the most recent update for kind.
func (v *RecordingView) Last(kind model.FieldKind) (model.Field, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := len(v.fields) - 1; i >= 0; i-- {
		if v.fields[i].Kind == kind {
			return v.fields[i], true
		}
	}
	return model.Field{}, false
}

// Reset drops recorded updates.
func (v *RecordingView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields = nil
	v.banners = nil
}
