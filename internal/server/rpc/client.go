package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/twit2/t2-auth/internal/common"
)

// ProfilePeer is the outbound client for the user-profile service. One
// connection is created at startup and reused across requests; REQ sockets
// are not thread-safe, so calls are serialized with a mutex.
type ProfilePeer struct {
	mu      sync.Mutex
	sock    *zmq.Socket
	timeout time.Duration
}

type createProfilePayload struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

func NewProfilePeer(endpoint string, timeout time.Duration) (*ProfilePeer, error) {
	sock, err := zmq.NewSocket(zmq.REQ)
	if err != nil {
		return nil, fmt.Errorf("profile peer socket creation error: %w", err)
	}

	// a REQ socket left waiting for a dead peer would otherwise wedge forever
	if err := sock.SetSndtimeo(timeout); err != nil {
		sock.Close()
		return nil, err
	}
	if err := sock.SetRcvtimeo(timeout); err != nil {
		sock.Close()
		return nil, err
	}
	if err := sock.SetReqRelaxed(true); err != nil {
		sock.Close()
		return nil, err
	}
	if err := sock.SetReqCorrelate(true); err != nil {
		sock.Close()
		return nil, err
	}

	if err := sock.Connect(endpoint); err != nil {
		sock.Close()
		return nil, fmt.Errorf("profile peer connect error: %w", err)
	}

	return &ProfilePeer{sock: sock, timeout: timeout}, nil
}

// CreateProfile asks the peer to create the companion profile record. Any
// error response, timeout or empty result fails the call; the caller decides
// what to do about the credential that was already persisted.
func (p *ProfilePeer) CreateProfile(ctx context.Context, username string, ownerID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(createProfilePayload{Username: username, ID: ownerID})
	if err != nil {
		return err
	}
	req, err := json.Marshal(Request{Name: "create-profile", Payload: payload})
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.sock.SendBytes(req, 0); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}

	raw, err := p.sock.RecvBytes(0)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("malformed peer response: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("peer error: %s", resp.Error)
	}
	if len(resp.Result) == 0 || string(resp.Result) == "null" || string(resp.Result) == "false" {
		return errors.New("peer returned no profile")
	}

	return nil
}

func (p *ProfilePeer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sock.Close()
}
