// internal/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rovshanmuradov/pumpfun-trader/internal/blockchain"
	"go.uber.org/zap"
)

const defaultConfirmationTimeout = 30 * time.Second

// ErrTransactionFailed возвращается, если транзакция подтверждена с ошибкой исполнения.
var ErrTransactionFailed = errors.New("transaction failed on chain")

// Client – тонкий адаптер для взаимодействия с блокчейном Solana через solana-go.
type Client struct {
	rpc                 *rpc.Client
	logger              *zap.Logger
	confirmationTimeout time.Duration
}

// IsAccountNotFoundError проверяет, является ли ошибка "not found"
func IsAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, rpc.ErrNotFound) || errors.Is(err, blockchain.ErrAccountNotFound) {
		return true
	}
	// "Method not found" и прочие ошибки RPC сюда не относятся
	return strings.Contains(strings.ToLower(err.Error()), "could not find account")
}

// NewClient создаёт новый клиент, принимая RPC URL и логгер через dependency injection.
func NewClient(rpcURL string, logger *zap.Logger) *Client {
	return &Client{
		rpc:                 rpc.New(rpcURL),
		logger:              logger.Named("solbc-client"),
		confirmationTimeout: defaultConfirmationTimeout,
	}
}

// SetConfirmationTimeout ограничивает время ожидания подтверждения транзакции.
func (c *Client) SetConfirmationTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.confirmationTimeout = timeout
	}
}

// GetRecentBlockhash получает последний blockhash с использованием стандартного метода solana-go.
func (c *Client) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Error("GetRecentBlockhash error", zap.Error(err))
		return solana.Hash{}, err
	}
	return result.Value.Blockhash, nil
}

// GetAccountData получает бинарные данные аккаунта.
func (c *Client) GetAccountData(ctx context.Context, pubkey solana.PublicKey) ([]byte, error) {
	result, err := c.rpc.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", blockchain.ErrAccountNotFound, pubkey)
		}
		c.logger.Debug("GetAccountInfo error",
			zap.String("pubkey", pubkey.String()),
			zap.Error(err))
		return nil, err
	}
	if result == nil || result.Value == nil || result.Value.Data == nil {
		return nil, fmt.Errorf("%w: %s", blockchain.ErrAccountNotFound, pubkey)
	}

	data := result.Value.Data.GetBinary()
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s has no data", blockchain.ErrAccountNotFound, pubkey)
	}
	return data, nil
}

// GetTokenAccountBalance получает баланс токенного аккаунта
func (c *Client) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	result, err := c.rpc.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		if IsAccountNotFoundError(err) {
			return 0, fmt.Errorf("%w: token account %s", blockchain.ErrAccountNotFound, account)
		}
		c.logger.Debug("GetTokenAccountBalance error",
			zap.String("account", account.String()),
			zap.Error(err))
		return 0, err
	}
	if result == nil || result.Value == nil || result.Value.Amount == "" {
		return 0, fmt.Errorf("%w: token account %s", blockchain.ErrAccountNotFound, account)
	}

	// SPL-токены в Solana представлены как строки для поддержки больших чисел
	balance, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token balance %q: %w", result.Value.Amount, err)
	}
	return balance, nil
}

// SendTransactionWithOpts отправляет транзакцию с заданными опциями.
func (c *Client) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       opts.SkipPreflight,
		PreflightCommitment: opts.PreflightCommitment,
	})
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if failure := AnalyzeSendError(err); failure != nil {
			fields = append(fields, failure.Fields()...)
		}
		c.logger.Error("SendTransactionWithOpts error", fields...)
		return solana.Signature{}, err
	}
	return sig, nil
}

// WaitForTransactionConfirmation опрашивает статус подписи с экспоненциальной задержкой
// до достижения нужного уровня подтверждения или истечения confirmationTimeout.
func (c *Client) WaitForTransactionConfirmation(ctx context.Context, signature solana.Signature, commitment rpc.CommitmentType) error {
	poll := func() (struct{}, error) {
		statuses, err := c.rpc.GetSignatureStatuses(ctx, false, signature)
		if err != nil {
			c.logger.Warn("Error getting signature statuses", zap.Error(err))
			return struct{}{}, err
		}
		if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
			return struct{}{}, fmt.Errorf("signature %s not yet visible", signature)
		}

		status := statuses.Value[0]
		if status.Err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err))
		}
		if reached(status.ConfirmationStatus, commitment) {
			return struct{}{}, nil
		}
		return struct{}{}, fmt.Errorf("signature %s is %s", signature, status.ConfirmationStatus)
	}

	_, err := backoff.Retry(
		ctx,
		poll,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(c.confirmationTimeout),
	)
	if err != nil {
		return fmt.Errorf("confirmation of %s: %w", signature, err)
	}
	return nil
}

// reached сравнивает статус подтверждения с требуемым уровнем.
func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	switch want {
	case rpc.CommitmentFinalized:
		return status == rpc.ConfirmationStatusFinalized
	case rpc.CommitmentProcessed:
		return status != ""
	default:
		return status == rpc.ConfirmationStatusConfirmed || status == rpc.ConfirmationStatusFinalized
	}
}

// Гарантируем, что Client реализует интерфейс blockchain.Client.
var _ blockchain.Client = (*Client)(nil)
