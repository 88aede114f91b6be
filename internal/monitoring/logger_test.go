package monitoring

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	defer ResetLogger()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("segment %s: %d slices", "liver", 12)
	if got != "segment liver: 12 slices" {
		t.Errorf("unexpected log line %q", got)
	}

	SetLogger(nil)
	got = ""
	Logf("muted")
	if got != "" {
		t.Errorf("expected muted logger, got %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger()
	l.Out = &buf

	l.Infof("no visible segments")
	l.Debugf("hidden at info level")

	out := buf.String()
	if !strings.Contains(out, `msg="no visible segments"`) || !strings.Contains(out, "level=info") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line should be filtered, got %q", out)
	}
}
