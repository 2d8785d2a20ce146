package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// newTestRoot creates a fresh cobra root command wired to all subcommands.
// Each test gets an isolated command tree to avoid shared state.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "symplot",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("verbose", false, "")
	root.PersistentFlags().Bool("quiet", false, "")
	root.AddCommand(NewPlotCmd())
	root.AddCommand(NewExportCmd())
	root.AddCommand(NewEvalCmd())
	return root
}

// executeCommand runs a cobra command with the given args and captures stdout/stderr.
func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

// writeTestFile creates a temporary file with the given content and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got: %v", err)
	}
	return exitErr.Code
}

const validScene = `viewport:
  x: {min: -5, max: 5}
  y: {min: -5, max: 5}
shapes:
  - id: 6f2c0b0e-7f55-4a0c-9c44-3f1cf2a6a410
    kind: line
    points: [{x: 0, y: 0}, {x: 4, y: 2}]
  - kind: ellipse
    points: [{x: 0, y: 0}, {x: 3, y: 2}]
`

const invalidScene = `shapes:
  - kind: ellipse
    points: [{x: 0, y: 0}, {x: 0, y: 2}]
`

// --- Plot command tests ---

func TestPlot_Stdout(t *testing.T) {
	path := writeTestFile(t, "scene.yaml", validScene)
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "plot", path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.HasPrefix(stdout, "<svg") {
		t.Errorf("expected SVG document, got: %q", stdout)
	}
	// One run for the line, two halves for the ellipse.
	if n := strings.Count(stdout, "<polyline"); n != 3 {
		t.Errorf("expected 3 polylines, got %d", n)
	}
	if strings.Contains(stdout, "<circle") {
		t.Error("markers drawn without --markers")
	}
}

func TestPlot_OutputFileAndMarkers(t *testing.T) {
	path := writeTestFile(t, "scene.yaml", validScene)
	out := filepath.Join(t.TempDir(), "scene.svg")
	root := newTestRoot()
	stdout, stderr, err := executeCommand(root, "plot", path, "-o", out, "--markers", "--step", "0.5")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout, got: %q", stdout)
	}
	if !strings.Contains(stderr, "wrote svg") {
		t.Errorf("expected log line on stderr, got: %q", stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "<circle"); n != 4 {
		t.Errorf("expected 4 markers, got %d", n)
	}
}

func TestPlot_Quiet(t *testing.T) {
	path := writeTestFile(t, "scene.yaml", validScene)
	out := filepath.Join(t.TempDir(), "scene.svg")
	root := newTestRoot()
	_, stderr, err := executeCommand(root, "plot", path, "-o", out, "--quiet")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stderr != "" {
		t.Errorf("expected no logs with --quiet, got: %q", stderr)
	}
}

func TestPlot_FileNotFound(t *testing.T) {
	root := newTestRoot()
	_, _, err := executeCommand(root, "plot", "/nonexistent/scene.yaml")
	if code := exitCode(t, err); code != exitFileNotFound {
		t.Errorf("expected exit code %d, got %d", exitFileNotFound, code)
	}
}

func TestPlot_InvalidScene(t *testing.T) {
	path := writeTestFile(t, "scene.yaml", invalidScene)
	root := newTestRoot()
	_, _, err := executeCommand(root, "plot", path)
	if code := exitCode(t, err); code != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, code)
	}
}

func TestPlot_MalformedYAML(t *testing.T) {
	path := writeTestFile(t, "scene.yaml", "shapes: [\n")
	root := newTestRoot()
	_, _, err := executeCommand(root, "plot", path)
	if code := exitCode(t, err); code != exitInputParse {
		t.Errorf("expected exit code %d, got %d", exitInputParse, code)
	}
}

// --- Export command tests ---

func TestExport_Text(t *testing.T) {
	path := writeTestFile(t, "scene.yaml", validScene)
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "export", path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(lines), stdout)
	}
	if !strings.Contains(lines[0], `\left\{0\le x\le 4\right\}`) {
		t.Errorf("expected restriction on line statement, got: %q", lines[0])
	}
	if !strings.Contains(lines[1], `\pm\sqrt{`) {
		t.Errorf("expected two-valued root in ellipse statement, got: %q", lines[1])
	}
}

func TestExport_JSONFormat(t *testing.T) {
	path := writeTestFile(t, "scene.yaml", validScene)
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "export", path, "--format", "json")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	var got []map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("expected JSON array, got: %q (%v)", stdout, err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(got))
	}
	if got[0]["shape_id"] != "6f2c0b0e-7f55-4a0c-9c44-3f1cf2a6a410" || got[0]["kind"] != "line" {
		t.Errorf("unexpected first statement: %v", got[0])
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	path := writeTestFile(t, "scene.yaml", validScene)
	root := newTestRoot()
	_, _, err := executeCommand(root, "export", path, "--format", "desmos")
	if code := exitCode(t, err); code != exitValidation {
		t.Errorf("expected exit code %d, got %d", exitValidation, code)
	}
}

// --- Eval command tests ---

func TestEval_Set(t *testing.T) {
	path := writeTestFile(t, "expr.json",
		`{"type":"sqrt","arg":{"type":"add","left":{"type":"var","name":"x"},"right":{"type":"const","value":1}}}`)
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", path, "--set", "x=3")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "2\n-2\n" {
		t.Errorf("expected both roots, got: %q", stdout)
	}
}

func TestEval_Symbolic(t *testing.T) {
	path := writeTestFile(t, "expr.json", `{"type":"principal_sqrt","arg":{"type":"var","name":"x"}}`)
	root := newTestRoot()
	stdout, _, err := executeCommand(root, "eval", path, "--latex")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stdout != "\\sqrt{x}\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestEval_Errors(t *testing.T) {
	root := newTestRoot()
	_, _, err := executeCommand(root, "eval", "/nonexistent/expr.json")
	if code := exitCode(t, err); code != exitFileNotFound {
		t.Errorf("expected exit code %d, got %d", exitFileNotFound, code)
	}

	path := writeTestFile(t, "expr.json", `{"type":"var","name":"x"}`)
	root = newTestRoot()
	_, _, err = executeCommand(root, "eval", path, "--set", "x=abc")
	if code := exitCode(t, err); code != exitInputParse {
		t.Errorf("expected exit code %d, got %d", exitInputParse, code)
	}

	path = writeTestFile(t, "expr.json", `{"type":"pow"}`)
	root = newTestRoot()
	_, _, err = executeCommand(root, "eval", path)
	if code := exitCode(t, err); code != exitInputParse {
		t.Errorf("expected exit code %d, got %d", exitInputParse, code)
	}
}
