// ==============================================
// File: internal/metadata/metadata.go
// ==============================================

// Package metadata fetches token metadata documents from the pump.fun frontend API.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gagliardetto/solana-go"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public pump.fun frontend API.
const DefaultBaseURL = "https://frontend-api.pump.fun"

const defaultTimeout = 15 * time.Second

// ErrHTTP is matched by every non-200 response error.
var ErrHTTP = errors.New("metadata http error")

// HTTPError carries the status of a failed metadata request.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error prints Status, which already carries the code ("404 Not Found").
func (e *HTTPError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if e.Body == "" {
		return "HTTP error: " + status
	}
	return fmt.Sprintf("HTTP error: %s: %s", status, e.Body)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTP
}

// TokenMetadata is the coin document served at /coins/{mint}.
type TokenMetadata struct {
	Mint                   solana.PublicKey  `json:"mint"`
	BondingCurve           solana.PublicKey  `json:"bonding_curve"`
	AssociatedBondingCurve solana.PublicKey  `json:"associated_bonding_curve"`
	Creator                solana.PublicKey  `json:"creator"`
	RaydiumPool            *solana.PublicKey `json:"raydium_pool"`

	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	Description string  `json:"description"`
	ImageURI    string  `json:"image_uri"`
	VideoURI    *string `json:"video_uri"`
	MetadataURI string  `json:"metadata_uri"`
	Twitter     *string `json:"twitter"`
	Telegram    *string `json:"telegram"`
	Website     *string `json:"website"`

	CreatedTimestamp       uint64  `json:"created_timestamp"`
	Complete               bool    `json:"complete"`
	VirtualSolReserves     int64   `json:"virtual_sol_reserves"`
	VirtualTokenReserves   int64   `json:"virtual_token_reserves"`
	TotalSupply            int64   `json:"total_supply"`
	ShowName               bool    `json:"show_name"`
	KingOfTheHillTimestamp *uint64 `json:"king_of_the_hill_timestamp"`
	MarketCap              float64 `json:"market_cap"`
	ReplyCount             uint64  `json:"reply_count"`
	LastReply              uint64  `json:"last_reply"`
	NSFW                   bool    `json:"nsfw"`
	MarketID               *uint64 `json:"market_id"`
	Inverted               *bool   `json:"inverted"`
	IsCurrentlyLive        bool    `json:"is_currently_live"`
	Username               *string `json:"username"`
	ProfileImage           *string `json:"profile_image"`
	USDMarketCap           float64 `json:"usd_market_cap"`
}

// Client is a thin resty wrapper around the metadata API.
type Client struct {
	client *resty.Client
	logger *zap.Logger
}

// NewClient creates a metadata client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	return &Client{
		client: client,
		logger: logger.Named("metadata"),
	}
}

// GetTokenMetadata fetches the metadata document of mint. No retry is attempted.
func (c *Client) GetTokenMetadata(ctx context.Context, mint solana.PublicKey) (*TokenMetadata, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("mint", mint.String()).
		Get("/coins/{mint}")
	if err != nil {
		return nil, fmt.Errorf("metadata request for %s: %w", mint, err)
	}

	if resp.StatusCode() != 200 {
		c.logger.Warn("Metadata request failed",
			zap.String("mint", mint.String()),
			zap.Int("status", resp.StatusCode()))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       strings.TrimSpace(string(resp.Body())),
		}
	}

	var md TokenMetadata
	if err := sonic.Unmarshal(resp.Body(), &md); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %w", mint, err)
	}

	c.logger.Debug("Fetched token metadata",
		zap.String("mint", mint.String()),
		zap.String("symbol", md.Symbol))
	return &md, nil
}
