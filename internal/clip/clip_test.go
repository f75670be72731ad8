package clip

import (
	"errors"
	"testing"
)

func withStubs(t *testing.T, native, osc error) {
	t.Helper()
	origNative, origOSC := nativeWriteAll, osc52WriteAll
	nativeWriteAll = func(string) error { return native }
	osc52WriteAll = func(string) error { return osc }
	t.Cleanup(func() {
		nativeWriteAll, osc52WriteAll = origNative, origOSC
	})
}

func TestWriteAll_PrefersNative(t *testing.T) {
	withStubs(t, nil, errors.New("should not be tried"))

	method, err := WriteAll("2024-01-01 plan applied")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != MethodNative {
		t.Errorf("got method %q", method)
	}
}

func TestWriteAll_FallsBackToOSC52(t *testing.T) {
	withStubs(t, errors.New("no display"), nil)

	method, err := WriteAll("log line")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if method != MethodOSC52 {
		t.Errorf("got method %q", method)
	}
}

func TestWriteAll_AllMechanismsFail(t *testing.T) {
	withStubs(t, errors.New("no display"), errors.New("not a tty"))

	if _, err := WriteAll("log line"); err == nil {
		t.Error("expected error when every mechanism fails")
	}
}
