package tools

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/bbernstein/nstravel/internal/ns"
)

// countingAPI counts requests and never answers them.
type countingAPI struct {
	calls int32
}

func (c *countingAPI) URL(endpoint string, params ns.Params) string {
	return ns.BuildURL(ns.DefaultBaseURL, endpoint, params)
}

func (c *countingAPI) Request(context.Context, string, string) (json.RawMessage, error) {
	atomic.AddInt32(&c.calls, 1)
	return nil, errors.New("unexpected remote call")
}
