// internal/blockchain/solbc/error_analyzer.go
package solbc

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"go.uber.org/zap"
)

// AnchorError is a program error reported through "AnchorError occurred" log lines.
type AnchorError struct {
	Code int
	Name string
	Msg  string
}

// SimulationFailure describes a transaction rejected during preflight simulation.
type SimulationFailure struct {
	Message string
	Logs    []string
	Anchor  *AnchorError
}

// AnalyzeSendError извлекает логи симуляции и ошибку Anchor из ответа RPC.
// Возвращает nil, если ошибка не является отказом симуляции.
func AnalyzeSendError(err error) *SimulationFailure {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) {
		return nil
	}
	if !strings.Contains(rpcErr.Message, "Transaction simulation failed") {
		return nil
	}

	failure := &SimulationFailure{Message: rpcErr.Message}
	data, ok := rpcErr.Data.(map[string]interface{})
	if !ok {
		return failure
	}
	logs, _ := data["logs"].([]interface{})
	for _, entry := range logs {
		line, ok := entry.(string)
		if !ok {
			continue
		}
		failure.Logs = append(failure.Logs, line)
		if failure.Anchor == nil && strings.Contains(line, "AnchorError occurred") {
			failure.Anchor = parseAnchorErrorLog(line)
		}
	}
	return failure
}

// Fields превращает отказ в поля для zap.
func (f *SimulationFailure) Fields() []zap.Field {
	fields := []zap.Field{zap.Strings("program_logs", f.Logs)}
	if f.Anchor != nil {
		fields = append(fields,
			zap.Int("anchor_code", f.Anchor.Code),
			zap.String("anchor_name", f.Anchor.Name),
			zap.String("anchor_message", f.Anchor.Msg))
	}
	return fields
}

// Example: "Program log: AnchorError occurred. Error Code: TooMuchSolRequired. Error Number: 6002. Error Message: slippage: Too much SOL required to buy the given amount of tokens.."
func parseAnchorErrorLog(line string) *AnchorError {
	result := &AnchorError{
		Name: fieldAfter(line, "Error Code:"),
		Msg:  fieldAfter(line, "Error Message:"),
	}
	if n, err := strconv.Atoi(fieldAfter(line, "Error Number:")); err == nil {
		result.Code = n
	}
	return result
}

// fieldAfter returns the text after key up to the next ". " separator.
func fieldAfter(line, key string) string {
	_, rest, ok := strings.Cut(line, key)
	if !ok {
		return ""
	}
	rest = strings.TrimSpace(rest)
	if value, _, ok := strings.Cut(rest, ". "); ok {
		return value
	}
	return strings.TrimRight(rest, ".")
}
