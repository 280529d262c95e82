package github

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Probe runs the optional DNS and connectivity self-test against the API
// host: what does this process resolve, and does an unauthenticated GET
// /meta get through. It only reports; the main flow produces the
// authoritative failure.
func (c *Client) Probe(ctx context.Context) {
	host := "api.github.com"
	if u, err := url.Parse(c.baseURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}

	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		c.logger.Warn("dns resolution failed", "host", host, "error", err)
	} else {
		sort.Strings(addrs)
		c.logger.Info("dns resolved", "host", host, "addrs", strings.Join(addrs, ", "))
	}

	status, _, err := c.do(ctx, http.MethodGet, "/meta", "", nil)
	if err != nil {
		c.logger.Warn("connectivity probe failed", "base", c.baseURL, "error", err)
		return
	}
	c.logger.Info("connectivity probe", "path", "/meta", "status", status)
}
