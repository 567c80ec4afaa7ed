package plex

import (
	"context"
	"errors"
	"fmt"
)

// Identity probes the server's identity endpoint. It uses a short
// timeout because callers race it across candidate connection URLs.
func (c *Client) Identity(ctx context.Context) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, identityTimeout)
	defer cancel()

	var out mediaContainer
	if err := c.get(ctx, "/identity", nil, &out); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	return &Identity{
		MachineIdentifier: out.MediaContainer.MachineIdentifier,
		Version:           out.MediaContainer.Version,
	}, nil
}

// ErrNoReachableServer is returned when no candidate URL answers an
// identity probe.
var ErrNoReachableServer = errors.New("no reachable server")

// PickServer probes all candidate URLs concurrently and returns a
// client for the first one that answers. A server is typically
// advertised with several connection paths (local, remote, relay);
// racing the probes picks the fastest usable one.
func PickServer(ctx context.Context, session Session, candidates []string, opts ...Option) (*Client, error) {
	if len(candidates) == 0 {
		return nil, ErrNoReachableServer
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type probe struct {
		client *Client
		err    error
	}
	results := make(chan probe, len(candidates))

	for _, u := range candidates {
		client := NewClient(u, session, opts...)
		go func() {
			_, err := client.Identity(ctx)
			results <- probe{client: client, err: err}
		}()
	}

	var lastErr error
	for range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case p := <-results:
			if p.err == nil {
				return p.client, nil
			}
			lastErr = p.err
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrNoReachableServer, lastErr)
}
