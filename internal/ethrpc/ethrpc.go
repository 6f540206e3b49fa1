package ethrpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hashicorp/go-hclog"
	"github.com/umbracle/ethgo"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned for unknown transactions and receipts
var ErrNotFound = errors.New("not found")

// RevertError is an eth_call that reverted. Data holds the revert payload
// when the node returned one.
type RevertError struct {
	Message string
	Data    []byte
}

func (e *RevertError) Error() string {
	if len(e.Data) == 0 {
		return e.Message
	}

	return fmt.Sprintf("%s: 0x%x", e.Message, e.Data)
}

// Client is a minimal JSON-RPC client for the calls the decoder needs
type Client struct {
	logger hclog.Logger
	rpc    *rpc.Client
}

// Dial connects to the node at url (http, ws or ipc)
func Dial(ctx context.Context, url string, logger hclog.Logger) (*Client, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	cl, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	return &Client{logger: logger.Named("ethrpc"), rpc: cl}, nil
}

func (c *Client) Close() {
	c.rpc.Close()
}

// Call runs eth_call against the latest block
func (c *Client) Call(ctx context.Context, to ethgo.Address, data []byte) ([]byte, error) {
	msg := map[string]string{
		"to":   to.String(),
		"data": hexutil.Encode(data),
	}

	var out hexutil.Bytes
	if err := c.rpc.CallContext(ctx, &out, "eth_call", msg, "latest"); err != nil {
		return nil, asRevert(err)
	}

	c.logger.Debug("eth_call", "to", to, "input", len(data), "output", len(out))

	return out, nil
}

// asRevert turns the error of a reverted call into a RevertError. Other
// errors are returned unchanged.
func asRevert(err error) error {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return err
	}

	revert := &RevertError{Message: err.Error()}

	if s, ok := dataErr.ErrorData().(string); ok {
		if data, decodeErr := hexutil.Decode(s); decodeErr == nil {
			revert.Data = data
		}
	}

	if revert.Data == nil && !strings.Contains(revert.Message, "revert") {
		return err
	}

	return revert
}

// Transaction is the part of a transaction the decoder looks at
type Transaction struct {
	Hash  ethgo.Hash
	From  ethgo.Address
	To    *ethgo.Address
	Input []byte
}

type rpcTransaction struct {
	Hash  ethgo.Hash     `json:"hash"`
	From  ethgo.Address  `json:"from"`
	To    *ethgo.Address `json:"to"`
	Input hexutil.Bytes  `json:"input"`
}

type rpcLog struct {
	Address ethgo.Address `json:"address"`
	Topics  []ethgo.Hash  `json:"topics"`
	Data    hexutil.Bytes `json:"data"`
}

type rpcReceipt struct {
	Status hexutil.Uint64 `json:"status"`
	Logs   []*rpcLog      `json:"logs"`
}

// Receipt is the part of a receipt the decoder looks at
type Receipt struct {
	Status uint64
	Logs   []*ethgo.Log
}

// TransactionByHash fetches a mined or pending transaction
func (c *Client) TransactionByHash(ctx context.Context, hash ethgo.Hash) (*Transaction, error) {
	var tx *rpcTransaction
	if err := c.rpc.CallContext(ctx, &tx, "eth_getTransactionByHash", hash); err != nil {
		return nil, err
	}

	if tx == nil {
		return nil, fmt.Errorf("transaction %s: %w", hash, ErrNotFound)
	}

	return &Transaction{Hash: tx.Hash, From: tx.From, To: tx.To, Input: tx.Input}, nil
}

// ReceiptByHash fetches the receipt of a mined transaction
func (c *Client) ReceiptByHash(ctx context.Context, hash ethgo.Hash) (*Receipt, error) {
	var r *rpcReceipt
	if err := c.rpc.CallContext(ctx, &r, "eth_getTransactionReceipt", hash); err != nil {
		return nil, err
	}

	if r == nil {
		return nil, fmt.Errorf("receipt %s: %w", hash, ErrNotFound)
	}

	receipt := &Receipt{Status: uint64(r.Status), Logs: make([]*ethgo.Log, len(r.Logs))}

	for i, l := range r.Logs {
		receipt.Logs[i] = &ethgo.Log{Address: l.Address, Topics: l.Topics, Data: l.Data}
	}

	return receipt, nil
}

// TransactionWithReceipt fetches a transaction and its receipt concurrently
func (c *Client) TransactionWithReceipt(ctx context.Context, hash ethgo.Hash) (*Transaction, *Receipt, error) {
	var (
		tx      *Transaction
		receipt *Receipt
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		tx, err = c.TransactionByHash(gctx, hash)

		return err
	})

	g.Go(func() error {
		var err error
		receipt, err = c.ReceiptByHash(gctx, hash)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return tx, receipt, nil
}
