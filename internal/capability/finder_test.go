package capability

import (
	"context"
	"errors"
	"testing"
)

type mockRunner struct {
	out string
	err error
}

func (m *mockRunner) Output(ctx context.Context, argv []string) (string, error) {
	return m.out, m.err
}

func TestDetect_FzfVersionLine(t *testing.T) {
	r := &mockRunner{out: "0.54.3 (d1b4c96)"}
	f, err := Detect(context.Background(), r, "fzf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Dialect != DialectFzf || f.Version != "0.54.3" {
		t.Errorf("got %+v", f)
	}
}

func TestDetect_SkimByBinaryName(t *testing.T) {
	r := &mockRunner{out: "sk 0.10.4"}
	f, err := Detect(context.Background(), r, "/usr/local/bin/sk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsSkim() {
		t.Errorf("expected skim dialect, got %s", f.Dialect)
	}
}

func TestDetect_SkimPackagedBinaryName(t *testing.T) {
	r := &mockRunner{out: "sk 0.10.4"}
	f, err := Detect(context.Background(), r, "/usr/bin/skim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsSkim() {
		t.Errorf("skim binary must select the skim dialect, got %s", f.Dialect)
	}
}

func TestDetect_MissingBinary(t *testing.T) {
	r := &mockRunner{err: errors.New("exec: not found")}
	_, err := Detect(context.Background(), r, "fzf")
	var de *DetectError
	if !errors.As(err, &de) {
		t.Fatalf("expected DetectError, got %v", err)
	}
}

func TestDetect_GarbageOutput(t *testing.T) {
	r := &mockRunner{out: "no digits here"}
	_, err := Detect(context.Background(), r, "fzf")
	var pe *VersionParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected VersionParseError, got %v", err)
	}
}

func TestAtLeast(t *testing.T) {
	f := Finder{Dialect: DialectFzf, Version: "0.45.0"}
	if !f.AtLeast("0.36.0") {
		t.Error("0.45.0 should satisfy 0.36.0")
	}
	if f.AtLeast("0.53.0") {
		t.Error("0.45.0 should not satisfy 0.53.0")
	}
	bad := Finder{Dialect: DialectFzf, Version: "garbage"}
	if bad.AtLeast("0.0.1") {
		t.Error("unparsable version must compare older than everything")
	}
}

func TestGates_SkimNeverReloads(t *testing.T) {
	f := Finder{Dialect: DialectSkim, Version: "99.0.0"}
	if f.SupportsReloadBind() {
		t.Error("skim must not report native reload binds")
	}
	if f.SupportsTransform() {
		t.Error("skim must not report transform")
	}
	if !f.HasQueryEscapingDefect() {
		t.Error("skim carries the query escaping defect")
	}
}

func TestSupportsColor_SkimSubset(t *testing.T) {
	sk := Finder{Dialect: DialectSkim, Version: "0.10.4"}
	if !sk.SupportsColor("hl+") {
		t.Error("hl+ is in the skim subset")
	}
	if sk.SupportsColor("preview-bg") {
		t.Error("preview-bg is fzf-only")
	}
	fzf := Finder{Dialect: DialectFzf, Version: "0.54.0"}
	if !fzf.SupportsColor("preview-bg") {
		t.Error("fzf accepts every color flag")
	}
}
