package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestInvoke(t *testing.T) {
	tests := []struct {
		name      string
		command   string
		workDir   string
		setup     func(f *fixture)
		wantValue any
		wantErr   string
	}{
		{
			name:      "healthy",
			command:   CmdCheckAPIHealth,
			setup:     func(f *fixture) { f.probe.healthy = true },
			wantValue: true,
		},
		{
			name:      "unhealthy is not an error",
			command:   CmdCheckAPIHealth,
			wantValue: false,
		},
		{
			name:      "status payload",
			command:   CmdGetSystemStatus,
			setup:     func(f *fixture) { f.probe.status = `{"api":"up"}` },
			wantValue: `{"api":"up"}`,
		},
		{
			name:    "status failure becomes a string",
			command: CmdGetSystemStatus,
			setup: func(f *fixture) {
				f.probe.statusErr = errors.New("status request: connection refused")
			},
			wantErr: "status request: connection refused",
		},
		{
			name:      "start api",
			command:   CmdStartAPI,
			wantValue: true,
		},
		{
			name:      "start api without application root",
			command:   CmdStartAPI,
			workDir:   "/",
			wantValue: false,
		},
		{
			name:      "stop api",
			command:   CmdStopAPI,
			wantValue: nil,
		},
		{
			name:    "unknown command",
			command: "restart_api",
			wantErr: "unknown command: restart_api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := shellDir
			if tt.workDir != "" {
				dir = filepath.FromSlash(tt.workDir)
			}
			f := newFixture(t, dir)
			if tt.setup != nil {
				tt.setup(f)
			}

			resp := f.ctrl.Commands().Invoke(context.Background(), tt.command)

			if tt.wantErr != "" {
				if resp.OK() || resp.Error != tt.wantErr {
					t.Fatalf("Invoke(%s) error = %q, want %q", tt.command, resp.Error, tt.wantErr)
				}
				return
			}
			if !resp.OK() {
				t.Fatalf("Invoke(%s): unexpected error %q", tt.command, resp.Error)
			}
			if resp.Value != tt.wantValue {
				t.Errorf("Invoke(%s) value = %v, want %v", tt.command, resp.Value, tt.wantValue)
			}
		})
	}
}

func TestInvokePoisonedStartReturnsError(t *testing.T) {
	f := newFixture(t, shellDir)
	f.spawner.panicV = "spawn panicked"

	resp := f.ctrl.Commands().Invoke(context.Background(), CmdStartAPI)
	if resp.OK() {
		t.Fatal("start_api succeeded on a panicking spawner")
	}
	if !strings.Contains(resp.Error, "poisoned") {
		t.Errorf("error = %q, want poisoning message", resp.Error)
	}

	resp = f.ctrl.Commands().Invoke(context.Background(), CmdStopAPI)
	if resp.OK() {
		t.Error("stop_api succeeded on a poisoned supervisor")
	}
}

func TestServerCommandsRefusedAfterQuit(t *testing.T) {
	f := newFixture(t, shellDir)
	f.ctrl.Dispatch(NewEvent(EventQuit))

	cmds := f.ctrl.Commands()
	resp := cmds.Invoke(context.Background(), CmdStartAPI)
	if resp.OK() {
		t.Fatalf("start_api after quit = %+v, want an error", resp)
	}
	if resp.Error != ErrExiting.Error() {
		t.Errorf("error = %q, want %q", resp.Error, ErrExiting.Error())
	}
	if _, err := cmds.StartAPI(); !errors.Is(err, ErrExiting) {
		t.Errorf("StartAPI after quit error = %v, want ErrExiting", err)
	}

	if got := f.spawner.spawns(); got != 0 {
		t.Errorf("spawns = %d, want 0", got)
	}
	if f.sup.IsRunning() {
		t.Error("companion running after quit")
	}
}

func TestStartAPIIdempotent(t *testing.T) {
	f := newFixture(t, shellDir)
	cmds := f.ctrl.Commands()

	for i := 0; i < 3; i++ {
		ok, err := cmds.StartAPI()
		if err != nil || !ok {
			t.Fatalf("StartAPI #%d = (%v, %v), want (true, nil)", i+1, ok, err)
		}
	}
	if got := f.spawner.spawns(); got != 1 {
		t.Errorf("spawns = %d, want 1", got)
	}

	if err := cmds.StopAPI(); err != nil {
		t.Fatalf("StopAPI: %v", err)
	}
	if err := cmds.StopAPI(); err != nil {
		t.Fatalf("second StopAPI: %v", err)
	}
}

func TestResponseJSON(t *testing.T) {
	data, err := json.Marshal(Response{Error: "status request: refused"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"value":null,"error":"status request: refused"}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}
