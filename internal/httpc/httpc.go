package httpc

import (
	"crypto/tls"
	"time"

	"github.com/go-resty/resty/v2"
)

// Httpc carries the client-level settings applied to every outgoing request.
type Httpc struct {
	TlsConfig *tls.Config
	Timeout   time.Duration
}

// New returns a resty.Client configured according to the receiver.
// Defaults: MinVersion TLS1.3 when a TLS config is given with MinVersion zero;
// no request timeout when Timeout is zero.
func (h *Httpc) New() *resty.Client {
	c := resty.New()
	if h.Timeout > 0 {
		c.SetTimeout(h.Timeout)
	}
	cfg := h.TlsConfig
	if cfg == nil {
		return c
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS13
	}
	c.SetTLSClientConfig(cfg)
	return c
}
