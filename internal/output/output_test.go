package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/pagecap/pagecap/internal/model"
)

func captureStdout(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	ferr := fn()
	w.Close()
	os.Stdout = old

	if ferr != nil {
		t.Fatal(ferr)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func testWindowsResult() WindowsResult {
	return WindowsResult{
		TS: 1707500000,
		Windows: []model.Window{
			{App: "Bookshelf", PID: 1234, Title: "Vitalsource Bookshelf", Bounds: [4]int{10, 20, 1200, 800}},
		},
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintJSON(testWindowsResult())
	})

	if bytes.Count([]byte(out), []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}
	var decoded WindowsResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Windows) != 1 || decoded.Windows[0].PID != 1234 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestPrintPrettyJSON(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintPrettyJSON(testWindowsResult())
	})
	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", out)
	}
}

func TestPrintYAML(t *testing.T) {
	out := captureStdout(t, func() error {
		return PrintYAML(testWindowsResult())
	})

	var decoded WindowsResult
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.TS != 1707500000 {
		t.Errorf("ts: got %d, want 1707500000", decoded.TS)
	}
	if !strings.Contains(out, "windows:") {
		t.Errorf("missing windows key in:\n%s", out)
	}
}

func TestPrintHonorsFormat(t *testing.T) {
	defer func() {
		OutputFormat = FormatYAML
		PrettyOutput = false
	}()

	OutputFormat = FormatJSON
	out := captureStdout(t, func() error {
		return Print(CalibrateResult{Window: "Bookshelf", DX: 850, DY: 600, Offset: "850,600"})
	})
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected JSON, got:\n%s", out)
	}

	OutputFormat = FormatYAML
	out = captureStdout(t, func() error {
		return Print(CalibrateResult{Window: "Bookshelf", DX: 850, DY: 600, Offset: "850,600"})
	})
	if !strings.Contains(out, "offset: 850,600") {
		t.Errorf("expected YAML offset line, got:\n%s", out)
	}
}
