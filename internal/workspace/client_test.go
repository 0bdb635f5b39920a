package workspace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/lzjever/kube-workspaces/internal/workspace/workspacetest"
)

const testKey = "ssh-rsa AAAA test@host"

func newTestClient(url string) *Client {
	return NewClient(url, "alice", testKey, nil)
}

func TestStatusParsesFullSnapshot(t *testing.T) {
	srv := workspacetest.New()
	defer srv.Close()
	srv.Script("PodStatus", `{
		"username": "alice",
		"phase": "ready",
		"ssh_address": {"address": "node-1.example.com", "port": 30022},
		"info": {"image": "workspace:v3", "memory_limit": "2Gi", "cpu_limit": "1500m"}
	}`)

	st, err := newTestClient(srv.URL()).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Username != "alice" {
		t.Errorf("username = %q, want alice", st.Username)
	}
	if st.Phase != PhaseReady {
		t.Errorf("phase = %s, want ready", st.Phase)
	}
	if st.SSHAddress == nil || st.SSHAddress.Address != "node-1.example.com" || st.SSHAddress.Port != 30022 {
		t.Errorf("ssh_address = %+v", st.SSHAddress)
	}
	if st.Info == nil {
		t.Fatal("info missing")
	}
	if st.Info.Image != "workspace:v3" {
		t.Errorf("image = %q", st.Info.Image)
	}
	if st.Info.MemoryLimit == nil || *st.Info.MemoryLimit != "2Gi" {
		t.Errorf("memory_limit = %v", st.Info.MemoryLimit)
	}
	if st.Info.CPULimit == nil || *st.Info.CPULimit != "1500m" {
		t.Errorf("cpu_limit = %v, want 1500m", st.Info.CPULimit)
	}
	if !st.IsReady() {
		t.Error("snapshot should be ready")
	}
}

func TestStatusToleratesUnknownPhase(t *testing.T) {
	srv := workspacetest.New()
	defer srv.Close()
	srv.Script("PodStatus",
		`{"phase": "Exploded"}`,
		`{}`,
		`{"phase": null}`,
	)

	client := newTestClient(srv.URL())
	for i := 0; i < 3; i++ {
		st, err := client.Status(context.Background())
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if st.Phase != PhaseUnknown {
			t.Errorf("call %d: phase = %s, want unknown", i, st.Phase)
		}
	}
}

func TestStatusNullOptionalFields(t *testing.T) {
	srv := workspacetest.New()
	defer srv.Close()
	srv.Script("PodStatus", `{"phase": "not_found", "ssh_address": null, "info": null}`)

	st, err := newTestClient(srv.URL()).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.SSHAddress != nil || st.Info != nil {
		t.Errorf("expected nil optionals, got %+v", st)
	}
}

func TestRequestShape(t *testing.T) {
	srv := workspacetest.New()
	defer srv.Close()
	srv.Script("PodStart", `{"phase": "starting"}`)

	if _, err := newTestClient(srv.URL()).Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	req := reqs[0]
	if req.Op != "PodStart" {
		t.Errorf("op = %q, want PodStart", req.Op)
	}
	if req.Username != "alice" {
		t.Errorf("username = %q", req.Username)
	}
	if req.SSHPublicKey != testKey {
		t.Errorf("ssh_public_key = %q", req.SSHPublicKey)
	}
	if _, err := uuid.Parse(req.RequestID); err != nil {
		t.Errorf("X-Request-Id %q is not a uuid: %v", req.RequestID, err)
	}
}

func TestStop(t *testing.T) {
	srv := workspacetest.New()
	defer srv.Close()
	srv.Script("PodStop", `{}`)

	if err := newTestClient(srv.URL()).Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	reqs := srv.Requests()
	if len(reqs) != 1 || reqs[0].Op != "PodStop" {
		t.Errorf("requests = %+v, want one PodStop", reqs)
	}
}

func TestAPIErrorSurfacesMessage(t *testing.T) {
	srv := workspacetest.New()
	defer srv.Close()
	srv.ScriptError("PodStart", "user not whitelisted")

	_, err := newTestClient(srv.URL()).Start(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T (%v), want *APIError", err, err)
	}
	if apiErr.Message != "user not whitelisted" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestProtocolErrorOnUnexpectedEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"neither ok nor error", http.StatusOK, `{"foo": "bar"}`},
		{"not json", http.StatusOK, `oops`},
		{"non-object", http.StatusOK, `"fine"`},
		{"server error", http.StatusInternalServerError, ``},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				w.Write([]byte(c.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Status(context.Background())
			var protoErr *ProtocolError
			if !errors.As(err, &protoErr) {
				t.Fatalf("got %T (%v), want *ProtocolError", err, err)
			}
		})
	}
}

func TestProtocolErrorOnMissingOpOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Ok": {"PodStart": {"phase": "ready"}}}`))
	}))
	defer srv.Close()

	// PodStatus asked for, PodStart answered.
	_, err := newTestClient(srv.URL).Status(context.Background())
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) {
		t.Fatalf("got %T (%v), want *ProtocolError", err, err)
	}
}
