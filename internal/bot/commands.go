// internal/bot/commands.go
package bot

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/pumpfun-trader/internal/dex/pumpfun"
	"github.com/shopspring/decimal"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("usage error")

// Usage is printed when the command line cannot be parsed.
const Usage = `usage:
  pumpfun buy <MINT> <AMOUNT_SOL> [SLIPPAGE]
  pumpfun sell <MINT> [AMOUNT|all|-] [SLIPPAGE]
  pumpfun curve <MINT>
  pumpfun metadata <MINT>`

var maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// Command представляет одну команду CLI
type Command interface {
	GetType() string
	Validate() error
}

// BuyCommand покупка токена за SOL
type BuyCommand struct {
	Mint           solana.PublicKey
	AmountLamports uint64
	Slippage       *float64 // nil selects the configured default
}

func (c BuyCommand) GetType() string { return "buy" }

func (c BuyCommand) Validate() error {
	if c.AmountLamports == 0 {
		return fmt.Errorf("%w: buy amount must be positive", pumpfun.ErrInvalidInput)
	}
	return validateOptionalSlippage(c.Slippage)
}

// SellMode says how the sell amount is chosen.
type SellMode int

const (
	SellPrompt SellMode = iota // ask interactively
	SellAll
	SellFixed
)

// SellCommand продажа токенов
type SellCommand struct {
	Mint     solana.PublicKey
	Mode     SellMode
	Amount   uint64 // raw token units, SellFixed only
	Slippage *float64
}

func (c SellCommand) GetType() string { return "sell" }

func (c SellCommand) Validate() error {
	if c.Mode == SellFixed && c.Amount == 0 {
		return fmt.Errorf("%w: sell amount must be positive", pumpfun.ErrInvalidInput)
	}
	return validateOptionalSlippage(c.Slippage)
}

// CurveCommand вывод состояния bonding curve
type CurveCommand struct {
	Mint solana.PublicKey
}

func (c CurveCommand) GetType() string { return "curve" }
func (c CurveCommand) Validate() error { return nil }

// MetadataCommand вывод метаданных токена
type MetadataCommand struct {
	Mint solana.PublicKey
}

func (c MetadataCommand) GetType() string { return "metadata" }
func (c MetadataCommand) Validate() error { return nil }

// ParseCommand разбирает аргументы командной строки (без имени программы).
func ParseCommand(args []string) (Command, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: expected a command and a mint", ErrUsage)
	}

	name := strings.ToLower(args[0])
	mint, err := solana.PublicKeyFromBase58(args[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid mint %q: %v", pumpfun.ErrInvalidInput, args[1], err)
	}
	rest := args[2:]

	var cmd Command
	switch name {
	case "buy":
		cmd, err = parseBuy(mint, rest)
	case "sell":
		cmd, err = parseSell(mint, rest)
	case "curve", "curvestate":
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: curve takes only a mint", ErrUsage)
		}
		cmd = CurveCommand{Mint: mint}
	case "metadata":
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: metadata takes only a mint", ErrUsage)
		}
		cmd = MetadataCommand{Mint: mint}
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	if err != nil {
		return nil, err
	}

	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return cmd, nil
}

func parseBuy(mint solana.PublicKey, args []string) (Command, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, fmt.Errorf("%w: buy takes an amount and an optional slippage", ErrUsage)
	}
	lamports, err := ParseSOL(args[0])
	if err != nil {
		return nil, err
	}
	cmd := BuyCommand{Mint: mint, AmountLamports: lamports}
	if len(args) == 2 {
		if cmd.Slippage, err = parseSlippage(args[1]); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func parseSell(mint solana.PublicKey, args []string) (Command, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("%w: sell takes an optional amount and an optional slippage", ErrUsage)
	}
	cmd := SellCommand{Mint: mint, Mode: SellPrompt}
	if len(args) >= 1 {
		switch strings.ToLower(args[0]) {
		case "-":
		case "all":
			cmd.Mode = SellAll
		default:
			amount, err := strconv.ParseUint(strings.ReplaceAll(args[0], "_", ""), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid token amount %q", pumpfun.ErrInvalidInput, args[0])
			}
			cmd.Mode = SellFixed
			cmd.Amount = amount
		}
	}
	if len(args) == 2 {
		slippage, err := parseSlippage(args[1])
		if err != nil {
			return nil, err
		}
		cmd.Slippage = slippage
	}
	return cmd, nil
}

// ParseSOL converts a decimal SOL amount into lamports, truncating sub-lamport digits.
func ParseSOL(s string) (uint64, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid SOL amount %q", pumpfun.ErrInvalidInput, s)
	}
	lamports := amount.Shift(9).Floor()
	if !lamports.IsPositive() {
		return 0, fmt.Errorf("%w: SOL amount %q must be at least one lamport", pumpfun.ErrInvalidInput, s)
	}
	if lamports.GreaterThan(maxUint64) {
		return 0, fmt.Errorf("%w: SOL amount %q is too large", pumpfun.ErrInvalidInput, s)
	}
	return lamports.BigInt().Uint64(), nil
}

// FormatSOL renders lamports as SOL.
func FormatSOL(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -9).String()
}

func parseSlippage(s string) (*float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid slippage %q", pumpfun.ErrInvalidInput, s)
	}
	return &v, nil
}

func validateOptionalSlippage(s *float64) error {
	if s == nil {
		return nil
	}
	return pumpfun.ValidateSlippage(*s)
}
