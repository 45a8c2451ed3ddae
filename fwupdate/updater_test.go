package fwupdate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

const goodFRU = `FRU Device Description : Builtin FRU Device (ID 0)
 Board Mfg Date        : Mon Jan  1 00:00:00 1996
 Board Mfg             : Apollo
 Board Product         : Service Module
 Board Serial          : 207
`

// recordingRunner captures invocations and replays canned output.
type recordingRunner struct {
	calls  [][]string
	output map[string]string // matched against the joined args
	err    error
}

func (r *recordingRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, append([]string{name}, args...))
	if r.err != nil {
		return nil, r.err
	}
	joined := strings.Join(args, " ")
	for key, out := range r.output {
		if strings.Contains(joined, key) {
			return []byte(out), nil
		}
	}
	return nil, nil
}

func TestValidateInfo(t *testing.T) {
	runner := &recordingRunner{output: map[string]string{"fru": goodFRU}}
	u := New("192.168.1.1", WithRunner(runner.run))

	if err := u.ValidateInfo(context.Background(), "0x82"); err != nil {
		t.Fatalf("ValidateInfo: %v", err)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(runner.calls))
	}
	want := []string{"ipmitool", "-H", "192.168.1.1", "-P", "", "-t", "0x82", "fru"}
	got := runner.calls[0]
	if len(got) != len(want) {
		t.Fatalf("call = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call arg %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestValidateInfoMismatch(t *testing.T) {
	tests := []struct {
		name string
		fru  string
	}{
		{
			name: "wrong description",
			fru:  "FRU Device Description : Some Other Device\n",
		},
		{
			name: "description absent",
			fru:  "Board Product : Service Module\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{output: map[string]string{"fru": tt.fru}}
			u := New("192.168.1.1", WithRunner(runner.run))

			err := u.ValidateInfo(context.Background(), "0x82")
			var mismatch *InfoMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("error = %T (%v), want *InfoMismatchError", err, err)
			}
			if mismatch.IPMB != "0x82" {
				t.Errorf("InfoMismatchError.IPMB = %q, want 0x82", mismatch.IPMB)
			}
		})
	}
}

func TestQueryFRUIgnoresNoise(t *testing.T) {
	fru := "banner line without colon\nBoard Serial : 207\n\n"
	runner := &recordingRunner{output: map[string]string{"fru": fru}}
	u := New("192.168.1.1", WithRunner(runner.run))

	fields, err := u.QueryFRU(context.Background(), "0x82")
	if err != nil {
		t.Fatalf("QueryFRU: %v", err)
	}
	if len(fields) != 1 || fields["Board Serial"] != "207" {
		t.Errorf("fields = %v, want only Board Serial=207", fields)
	}
}

func TestUpgradeAndActivate(t *testing.T) {
	runner := &recordingRunner{}
	u := New("192.168.1.1", WithRunner(runner.run))

	if err := u.Upgrade(context.Background(), "0x82", "/tmp/fw.hpm"); err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if err := u.Activate(context.Background(), "0x82"); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(runner.calls))
	}
	if joined := strings.Join(runner.calls[0], " "); !strings.HasSuffix(joined, "hpm upgrade /tmp/fw.hpm") {
		t.Errorf("upgrade call = %q", joined)
	}
	if joined := strings.Join(runner.calls[1], " "); !strings.HasSuffix(joined, "hpm activate") {
		t.Errorf("activate call = %q", joined)
	}
}

func TestUpgradeFailure(t *testing.T) {
	runner := &recordingRunner{err: fmt.Errorf("exit status 1")}
	u := New("192.168.1.1", WithRunner(runner.run))

	if err := u.Upgrade(context.Background(), "0x82", "/tmp/fw.hpm"); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestWithTool(t *testing.T) {
	runner := &recordingRunner{output: map[string]string{"fru": goodFRU}}
	u := New("192.168.1.1", WithRunner(runner.run), WithTool("/opt/ipmitool"))

	if err := u.ValidateInfo(context.Background(), "0x82"); err != nil {
		t.Fatalf("ValidateInfo: %v", err)
	}
	if runner.calls[0][0] != "/opt/ipmitool" {
		t.Errorf("tool = %q, want /opt/ipmitool", runner.calls[0][0])
	}
}
