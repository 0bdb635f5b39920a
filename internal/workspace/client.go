package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lzjever/kube-workspaces/internal/observability"
)

const (
	opStart  = "PodStart"
	opStatus = "PodStatus"
	opStop   = "PodStop"
)

// Client talks to the control plane's single query endpoint. All three
// lifecycle operations share the same request shape and envelope.
type Client struct {
	endpoint     string
	username     string
	sshPublicKey string
	httpc        *http.Client
	log          *zap.Logger
}

// NewClient builds a client for the control plane at apiURL. The URL must
// have no trailing path; the query endpoint is always apiURL + "/api/query".
func NewClient(apiURL, username, sshPublicKey string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint:     apiURL + "/api/query",
		username:     username,
		sshPublicKey: sshPublicKey,
		httpc:        http.DefaultClient,
		log:          log,
	}
}

type queryRequest struct {
	Username     string `json:"username"`
	SSHPublicKey string `json:"ssh_public_key"`
}

// Query sends one request to the control plane and unwraps the tagged
// Ok/Error envelope, returning the Ok payload verbatim. Exactly one network
// round trip per call; no retries.
func (c *Client) Query(ctx context.Context, body any) (json.RawMessage, error) {
	return c.query(ctx, uuid.NewString(), body)
}

func (c *Client) query(ctx context.Context, requestID string, body any) (json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &ProtocolError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProtocolError{Reason: "read response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ProtocolError{Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &ProtocolError{Reason: "malformed JSON", Err: err}
	}
	if payload, found := envelope["Ok"]; found {
		return payload, nil
	}
	if payload, found := envelope["Error"]; found {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload, &apiErr); err != nil {
			return nil, &ProtocolError{Reason: "malformed error payload", Err: err}
		}
		return nil, &APIError{Message: apiErr.Message}
	}
	return nil, &ProtocolError{Reason: "response is neither Ok nor Error"}
}

func (c *Client) queryWorkspace(ctx context.Context, op string) (Status, error) {
	requestID := uuid.NewString()
	log := observability.QueryLogger(c.log, requestID, op)
	log.Debug("querying control plane", zap.String("endpoint", c.endpoint))

	payload, err := c.query(ctx, requestID, map[string]queryRequest{
		op: {Username: c.username, SSHPublicKey: c.sshPublicKey},
	})
	if err != nil {
		return Status{}, err
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(payload, &out); err != nil {
		return Status{}, &ProtocolError{Reason: "malformed query output", Err: err}
	}
	raw, found := out[op]
	if !found {
		return Status{}, &ProtocolError{Reason: fmt.Sprintf("missing %s output", op)}
	}

	var wire struct {
		Username   string      `json:"username"`
		Phase      string      `json:"phase"`
		SSHAddress *SSHAddress `json:"ssh_address"`
		Info       *Info       `json:"info"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Status{}, &ProtocolError{Reason: "malformed workspace status", Err: err}
	}
	st := Status{
		Username:   wire.Username,
		Phase:      ParsePhase(wire.Phase),
		SSHAddress: wire.SSHAddress,
		Info:       wire.Info,
	}
	log.Debug("workspace snapshot", zap.String("phase", string(st.Phase)), zap.Bool("ready", st.IsReady()))
	return st, nil
}

// Start asks the control plane to ensure the workspace exists and is
// progressing toward ready, and returns the current snapshot. Safe to call
// repeatedly; it is a reconciliation nudge, not a one-shot create.
func (c *Client) Start(ctx context.Context) (Status, error) {
	return c.queryWorkspace(ctx, opStart)
}

// Status returns the current snapshot without side effects.
func (c *Client) Status(ctx context.Context) (Status, error) {
	return c.queryWorkspace(ctx, opStatus)
}

// Stop requests teardown. It does not wait for termination to finish.
func (c *Client) Stop(ctx context.Context) error {
	_, err := c.Query(ctx, map[string]queryRequest{
		opStop: {Username: c.username, SSHPublicKey: c.sshPublicKey},
	})
	return err
}
