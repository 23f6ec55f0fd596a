package runtime

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func runForOutput(t *testing.T, src string) (stdout, stderr string, s *Session) {
	t.Helper()
	s = NewSession()
	var out, errOut bytes.Buffer
	s.SetStdout(&out)
	s.Stderr = &errOut
	s.Run(src)
	return out.String(), errOut.String(), s
}

func TestSessionRunsArithmeticAndPrint(t *testing.T) {
	out, errOut, s := runForOutput(t, "print 1 + 2 * 3;")
	if s.HadError || s.HadRuntimeError {
		t.Fatalf("unexpected flags: HadError=%v HadRuntimeError=%v, stderr=%q", s.HadError, s.HadRuntimeError, errOut)
	}
	if got := strings.TrimRight(out, "\n"); got != "7" {
		t.Fatalf("got %q, want %q", got, "7")
	}
}

func TestSessionBlockScoping(t *testing.T) {
	out, _, s := runForOutput(t, `var a = "outer"; { var a = "inner"; print a; } print a;`)
	if s.HadError || s.HadRuntimeError {
		t.Fatalf("unexpected error flags")
	}
	want := "inner\nouter\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestSessionStaticErrorSuppressesEvaluation(t *testing.T) {
	out, errOut, s := runForOutput(t, "print 1\nprint 2;")
	if !s.HadError {
		t.Fatalf("expected HadError to be set")
	}
	if s.HadRuntimeError {
		t.Fatalf("did not expect a runtime error")
	}
	if out != "" {
		t.Fatalf("expected no output since a static error suppresses evaluation entirely, got %q", out)
	}
	if !strings.Contains(errOut, "Expect ';' after value.") {
		t.Fatalf("expected a diagnostic about the missing semicolon, got %q", errOut)
	}
}

func TestSessionRuntimeErrorSetsFlagAndKeepsPriorOutput(t *testing.T) {
	out, errOut, s := runForOutput(t, `print "before"; print 1 + "a";`)
	if s.HadError {
		t.Fatalf("did not expect a static error")
	}
	if !s.HadRuntimeError {
		t.Fatalf("expected HadRuntimeError to be set")
	}
	if out != "before\n" {
		t.Fatalf("got %q, want only the statement before the failure to have run", out)
	}
	if !strings.Contains(errOut, "[line 1]") {
		t.Fatalf("expected the reported error to name the line, got %q", errOut)
	}
}

func TestSessionResetClearsHadErrorButNotHadRuntimeError(t *testing.T) {
	s := NewSession()
	var out bytes.Buffer
	s.SetStdout(&out)
	s.Stderr = &out

	s.Run("print 1\n")
	if !s.HadError {
		t.Fatalf("expected first run to set HadError")
	}
	s.Reset()
	if s.HadError {
		t.Fatalf("expected Reset to clear HadError")
	}

	s.Run(`print 1 + "a";`)
	if !s.HadRuntimeError {
		t.Fatalf("expected second run to set HadRuntimeError")
	}
	s.Reset()
	if !s.HadRuntimeError {
		t.Fatalf("Reset must never clear HadRuntimeError")
	}
}

func TestSessionShortCircuitLogicalOperators(t *testing.T) {
	out, _, s := runForOutput(t, "print true or boom; print false and boom;")
	if s.HadRuntimeError {
		t.Fatalf("did not expect a runtime error, since boom should never be evaluated")
	}
	want := "true\nfalse\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRunFileExitCodes(t *testing.T) {
	dir := t.TempDir()
	write := func(name, contents string) string {
		path := dir + "/" + name
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			t.Fatalf("os.WriteFile: %v", err)
		}
		return path
	}

	cases := []struct {
		name string
		src  string
		want int
	}{
		{"ok.lumen", "print 1;", ExitOK},
		{"static.lumen", "print 1\n", ExitDataErr},
		{"runtime.lumen", `print 1 + "a";`, ExitSoftware},
	}
	for _, c := range cases {
		path := write(c.name, c.src)
		if got := RunFile(path); got != c.want {
			t.Errorf("%s: got exit code %d, want %d", c.name, got, c.want)
		}
	}
}

func TestRunFileMissingFile(t *testing.T) {
	if got := RunFile("/nonexistent/path/does/not/exist.lumen"); got != ExitDataErr {
		t.Fatalf("got exit code %d, want %d", got, ExitDataErr)
	}
}
