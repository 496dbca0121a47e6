package headerchain

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/services/headerchain/http_impl"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/bitcoin-sv/headerchain/util/health"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to a remote header chain server over its JSON API.
type Client struct {
	logger     ulogger.Logger
	address    string
	baseURL    string
	httpClient *http.Client
	liveness   func(ctx context.Context, checkLiveness bool) (int, string, error)
}

// NewClient uses headerchain_httpAddress and headerchain_apiPrefix to locate the server.
func NewClient(logger ulogger.Logger, tSettings *settings.Settings) (*Client, error) {
	if tSettings.HeaderChain.HTTPAddress == nil {
		return nil, errors.NewConfigurationError("no headerchain_httpAddress setting found")
	}

	return NewClientWithAddress(logger, tSettings.HeaderChain.HTTPAddress, tSettings.HeaderChain.APIPrefix), nil
}

func NewClientWithAddress(logger ulogger.Logger, address *url.URL, apiPrefix string) *Client {
	root := strings.TrimSuffix(address.String(), "/")

	return &Client{
		logger:     logger,
		address:    root,
		baseURL:    root + apiPrefix,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		liveness:   health.CheckHTTPServer(root, "/health/liveness"),
	}
}

func (c *Client) Initialize(ctx context.Context, sender string, req *model.InitRequest) error {
	return c.do(ctx, http.MethodPost, "/init", sender, req, nil)
}

func (c *Client) UpdateBlockOffset(ctx context.Context, sender string, headers []string) error {
	return c.do(ctx, http.MethodPost, "/update", sender, &model.UpdateRequest{BlockHeaders: headers}, nil)
}

func (c *Client) GetContractInfo(ctx context.Context) (*model.InfoResponse, error) {
	info := &model.InfoResponse{}

	if err := c.do(ctx, http.MethodGet, "/info", "", nil, info); err != nil {
		return nil, err
	}

	return info, nil
}

// Health asks the server for its readiness, or its liveness when checkLiveness is set.
func (c *Client) Health(ctx context.Context, checkLiveness bool) (int, string, error) {
	if checkLiveness {
		status, details, err := c.liveness(ctx, checkLiveness)
		if err != nil {
			return status, details, errors.NewServiceUnavailableError("header chain server is unreachable", err)
		}

		if status != http.StatusOK {
			return status, details, errors.NewServiceUnavailableError("header chain server is not live")
		}

		return status, details, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.address+"/health/readiness", nil)
	if err != nil {
		return http.StatusServiceUnavailable, "", errors.NewServiceError("failed to create health request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return http.StatusServiceUnavailable, "", errors.NewServiceUnavailableError("header chain server is unreachable", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, string(body), errors.NewServiceUnavailableError("header chain server is not healthy")
	}

	return resp.StatusCode, string(body), nil
}

func (c *Client) do(ctx context.Context, method, path, sender string, body interface{}, result interface{}) error {
	var reqBody io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.NewProcessingError("failed to encode request", err)
		}

		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.NewServiceError("failed to create request for %s", path, err)
	}

	req.Header.Set("Content-Type", "application/json")

	if sender != "" {
		req.Header.Set(http_impl.SenderHeader, sender)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.NewContextCanceledError("request to %s cancelled", path, ctxErr)
		}

		return errors.NewNetworkError("request to %s failed", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError("failed to read response from %s", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp.StatusCode, respBody)
	}

	if result == nil {
		return nil
	}

	if err = json.Unmarshal(respBody, result); err != nil {
		return errors.NewNetworkInvalidResponseError("invalid response from %s", path, err)
	}

	return nil
}

// decodeError turns an error response back into the typed error the server returned.
func decodeError(status int, body []byte) error {
	errResp := &http_impl.ErrorResponse{}

	if err := json.Unmarshal(body, errResp); err != nil || errResp.Err == "" {
		return errors.NewNetworkInvalidResponseError("unexpected response status %d: %s", status, strings.TrimSpace(string(body)))
	}

	var data []byte
	if len(errResp.Data) > 0 {
		data, _ = json.Marshal(errResp.Data)
	}

	return errors.Restore(errors.ERR(errResp.Code), errResp.Err, data)
}
