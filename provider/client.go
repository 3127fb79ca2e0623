package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/keystored/attestation-appid/interfaces"
)

// ServiceError is the JSON body the provider returns for domain failures.
type ServiceError struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// Client is an interfaces.Provider backed by the provider HTTP endpoint.
//
// One Client is shared process-wide. The resolved service handle is cached in
// a mutex-guarded slot; the mutex is only held while reading, initializing or
// clearing the slot, never across the request itself.
type Client struct {
	resolver   Resolver
	httpClient *http.Client
	log        *slog.Logger

	mu     sync.Mutex
	handle *handle // GUARDED_BY mu
}

type handle struct {
	baseURL string
}

// NewClient creates a provider client that locates the service through the
// given resolver.
func NewClient(resolver Resolver, log *slog.Logger) *Client {
	return &Client{
		resolver:   resolver,
		httpClient: http.DefaultClient,
		log:        log,
	}
}

// WithHTTPClient overrides the HTTP client used for lookups.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// AppID looks up the package metadata for a UID. Failures are returned as
// *interfaces.RPCError classified for the gatherer's retry policy.
func (c *Client) AppID(uid uint32) (*interfaces.KeyAttestationAppID, error) {
	h, err := c.acquire()
	if err != nil {
		return nil, &interfaces.RPCError{
			Kind: interfaces.RPCTransactionFailed,
			Msg:  fmt.Sprintf("could not acquire provider service: %v", err),
		}
	}

	resp, err := c.httpClient.Get(fmt.Sprintf("%s/api/provider/v1/appid/%d", h.baseURL, uid))
	if err != nil {
		return nil, &interfaces.RPCError{
			Kind: interfaces.RPCTransactionFailed,
			Msg:  fmt.Sprintf("could not request provider: %v", err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &interfaces.RPCError{
			Kind: interfaces.RPCTransactionFailed,
			Msg:  fmt.Sprintf("could not read provider response: %v", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		var svcErr ServiceError
		if err := json.Unmarshal(body, &svcErr); err == nil && svcErr.Code != 0 {
			return nil, &interfaces.RPCError{
				Kind: interfaces.RPCServiceSpecific,
				Code: svcErr.Code,
				Msg:  svcErr.Message,
			}
		}
		return nil, &interfaces.RPCError{
			Kind: interfaces.RPCOther,
			Msg:  fmt.Sprintf("provider returned %d: %s", resp.StatusCode, string(body)),
		}
	}

	var appID interfaces.KeyAttestationAppID
	if err := json.Unmarshal(body, &appID); err != nil {
		return nil, &interfaces.RPCError{
			Kind: interfaces.RPCOther,
			Msg:  fmt.Sprintf("could not parse provider response: %v", err),
		}
	}

	return &appID, nil
}

// acquire returns the cached service handle, resolving the service first if
// the slot is empty. Resolution blocks with no timeout until the service
// appears.
func (c *Client) acquire() (*handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle == nil {
		baseURL, err := c.resolver.WaitFor(ServiceName)
		if err != nil {
			return nil, err
		}
		if c.log != nil {
			c.log.Debug("Resolved provider service", "service", ServiceName, "addr", baseURL)
		}
		c.handle = &handle{baseURL: baseURL}
	}

	return c.handle, nil
}

// Reset drops the cached service handle. Callers already holding a handle
// keep using it; the next AppID call re-resolves the service.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handle = nil
}
