// Package node wraps the blockchain node's JSON-RPC interface. All clicks
// enter and leave the system through this client: the ingester reads the
// account log, the disburser and wallet submit transfers.
package node

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clickchain/settlement/internal/adapter"
	"github.com/clickchain/settlement/internal/config"
	"github.com/clickchain/settlement/internal/domain"
)

// Client defines the node operations the engine depends on.
//
//go:generate mockgen -source=node.go -destination=../mocks/node.go -package=mocks -mock_names=Client=MockNodeClient
type Client interface {
	// GetLog returns the account's transaction log entries since the given
	// time, oldest first
	GetLog(ctx context.Context, since time.Time) ([]domain.TransactionLogEntry, error)

	// GetTransaction looks up a transaction by id. Returns nil without error
	// when the node does not know the transaction.
	GetTransaction(ctx context.Context, txID string) (*domain.TransactionLogEntry, error)

	// GetBalance returns the spendable balance of the operator account
	GetBalance(ctx context.Context) (domain.Click, error)

	// SendOne submits a single transfer. The message travels on-chain and is
	// how recipients and reconciliation identify the payment. Submission is
	// single-attempt; an unknown outcome is the caller's to reconcile.
	SendOne(ctx context.Context, to domain.AccountAddress, amount domain.Click, message string) (*domain.TransactionResult, error)

	// SendMany submits one transaction with multiple recipient wires
	SendMany(ctx context.Context, wires []domain.Wire) (*domain.TransactionResult, error)
}

type rpcRequest struct {
	ID     int64                  `json:"id"`
	Method string                 `json:"method"`
	Params map[string]interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type client struct {
	http    adapter.HTTPClient
	rpcURL  string
	address domain.AccountAddress
	secret  string
}

// NewClient creates a node client for the configured operator account
func NewClient(http adapter.HTTPClient, cfg config.NodeConfig) Client {
	return &client{
		http:    http,
		rpcURL:  cfg.RPCURL,
		address: domain.AccountAddress(cfg.AccountAddress).Normalize(),
		secret:  cfg.Secret,
	}
}

func (c *client) call(ctx context.Context, method string, params map[string]interface{}, result interface{}, retry bool) error {
	if params == nil {
		params = map[string]interface{}{}
	}
	params["address"] = c.address
	params["secret"] = c.secret

	req := rpcRequest{
		ID:     time.Now().UnixNano(),
		Method: method,
		Params: params,
	}

	var err error
	if retry {
		err = c.http.PostJSON(ctx, c.rpcURL, req, result)
	} else {
		err = c.http.PostJSONOnce(ctx, c.rpcURL, req, result)
	}
	if err != nil {
		return fmt.Errorf("node %s failed: %w", method, err)
	}

	return nil
}

// GetLog returns the account's transaction log entries since the given time
func (c *client) GetLog(ctx context.Context, since time.Time) ([]domain.TransactionLogEntry, error) {
	var resp struct {
		Error *rpcError                   `json:"error"`
		Log   []domain.TransactionLogEntry `json:"log"`
	}

	params := map[string]interface{}{"from": since.UTC().Unix()}
	if err := c.call(ctx, "get_log", params, &resp, true); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, nodeError("get_log", resp.Error)
	}

	return resp.Log, nil
}

// GetTransaction looks up a transaction by id
func (c *client) GetTransaction(ctx context.Context, txID string) (*domain.TransactionLogEntry, error) {
	var resp struct {
		Error *rpcError                   `json:"error"`
		Txn   *domain.TransactionLogEntry `json:"txn"`
	}

	params := map[string]interface{}{"txid": txID}
	if err := c.call(ctx, "get_transaction", params, &resp, true); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		if isNotFound(resp.Error) {
			return nil, nil
		}
		return nil, nodeError("get_transaction", resp.Error)
	}

	return resp.Txn, nil
}

// GetBalance returns the spendable balance of the operator account
func (c *client) GetBalance(ctx context.Context) (domain.Click, error) {
	var resp struct {
		Error   *rpcError `json:"error"`
		Account struct {
			Balance domain.Click `json:"balance"`
		} `json:"account"`
	}

	if err := c.call(ctx, "get_account", nil, &resp, true); err != nil {
		return 0, err
	}
	if resp.Error != nil {
		return 0, nodeError("get_account", resp.Error)
	}

	return resp.Account.Balance, nil
}

// SendOne submits a single transfer
func (c *client) SendOne(ctx context.Context, to domain.AccountAddress, amount domain.Click, message string) (*domain.TransactionResult, error) {
	var resp struct {
		Error *rpcError                 `json:"error"`
		Txn   *domain.TransactionResult `json:"txn"`
	}

	params := map[string]interface{}{
		"target_address": to.Normalize(),
		"amount":         amount,
		"message":        message,
	}
	if err := c.call(ctx, "send_one", params, &resp, false); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, nodeError("send_one", resp.Error)
	}
	if resp.Txn == nil {
		return nil, fmt.Errorf("node send_one returned no transaction: %w", domain.ErrUnexpectedResponse)
	}

	return resp.Txn, nil
}

// SendMany submits one transaction with multiple recipient wires
func (c *client) SendMany(ctx context.Context, wires []domain.Wire) (*domain.TransactionResult, error) {
	var resp struct {
		Error *rpcError                 `json:"error"`
		Txn   *domain.TransactionResult `json:"txn"`
	}

	targets := make(map[domain.AccountAddress]domain.Click, len(wires))
	for _, wire := range wires {
		targets[wire.TargetAddress.Normalize()] += wire.Amount
	}

	params := map[string]interface{}{"wires": targets}
	if err := c.call(ctx, "send_many", params, &resp, false); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, nodeError("send_many", resp.Error)
	}
	if resp.Txn == nil {
		return nil, fmt.Errorf("node send_many returned no transaction: %w", domain.ErrUnexpectedResponse)
	}

	return resp.Txn, nil
}

const (
	codeInsufficientFunds = -13
	codeNotFound          = -10
)

func nodeError(method string, rpcErr *rpcError) error {
	if rpcErr.Code == codeInsufficientFunds ||
		strings.Contains(strings.ToLower(rpcErr.Message), "insufficient funds") {
		return fmt.Errorf("node %s: %s: %w", method, rpcErr.Message, domain.ErrInsufficientFunds)
	}
	return fmt.Errorf("node %s failed with code %d: %s", method, rpcErr.Code, rpcErr.Message)
}

func isNotFound(rpcErr *rpcError) bool {
	return rpcErr.Code == codeNotFound ||
		strings.Contains(strings.ToLower(rpcErr.Message), "not found")
}
