package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/presaleadmin/internal/config"
	"github.com/GlebRadaev/presaleadmin/internal/domain"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"}
]`

const (
	receiptPollInterval = 2 * time.Second
	receiptTimeout      = 3 * time.Minute

	maxAmountExponent = 64
)

var (
	ErrWalletDisabled           = errors.New("on-chain transfers are not configured")
	ErrInvalidAddress           = errors.New("invalid wallet address")
	ErrInvalidAmount            = errors.New("invalid token amount")
	ErrInsufficientTokenBalance = errors.New("insufficient token balance")
	ErrInsufficientGas          = errors.New("insufficient native balance for gas")
	ErrTransferReverted         = errors.New("transfer reverted")
	// ErrBroadcastFailed means the node rejected the signed transaction and
	// does not know its hash, so nothing was paid.
	ErrBroadcastFailed = errors.New("transfer was not broadcast")
	// ErrTransferUnconfirmed means the transaction was broadcast but its outcome
	// is unknown. It must not be sent again.
	ErrTransferUnconfirmed = errors.New("transfer broadcast but not confirmed")
)

// RecordFunc persists the hash of a signed transfer. It runs before the
// transaction is broadcast; an error aborts the transfer.
type RecordFunc func(hash string) error

//go:generate mockgen -source=chain.go -destination=mock_chain.go -package=chain
type EthClient interface {
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// Wallet signs ERC-20 transfers of the presale token from a single key.
type Wallet struct {
	client       EthClient
	key          *ecdsa.PrivateKey
	from         common.Address
	token        common.Address
	chainID      *big.Int
	decimals     int32
	tokenABI     abi.ABI
	pollInterval time.Duration

	// one signer, one nonce sequence
	mu sync.Mutex
}

// Dial connects to the configured RPC endpoint.
func Dial(ctx context.Context, cfg config.ChainConfig) (*Wallet, error) {
	if !cfg.Enabled() {
		return nil, ErrWalletDisabled
	}
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("can't dial chain rpc: %w", err)
	}
	return New(client, cfg)
}

func New(client EthClient, cfg config.ChainConfig) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.SignerKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("can't parse signer key: %w", err)
	}
	if !common.IsHexAddress(cfg.TokenAddress) {
		return nil, fmt.Errorf("token address %q: %w", cfg.TokenAddress, ErrInvalidAddress)
	}
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, err
	}

	return &Wallet{
		client:       client,
		key:          key,
		from:         crypto.PubkeyToAddress(key.PublicKey),
		token:        common.HexToAddress(cfg.TokenAddress),
		chainID:      big.NewInt(cfg.ChainID),
		decimals:     cfg.TokenDecimals,
		tokenABI:     parsed,
		pollInterval: receiptPollInterval,
	}, nil
}

func (w *Wallet) Address() string {
	return w.from.Hex()
}

// Transfer sends amountToken (a decimal string in whole tokens) to the given
// address and waits until the transaction is mined. record is called with the
// signed hash before broadcasting. Failures after that point wrap
// ErrBroadcastFailed, ErrTransferReverted or ErrTransferUnconfirmed.
func (w *Wallet) Transfer(ctx context.Context, to, amountToken string, record RecordFunc) (*domain.TransferReceipt, error) {
	if !strings.HasPrefix(to, "0x") || !common.IsHexAddress(to) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, to)
	}
	amount, err := ParseUnits(amountToken, w.decimals)
	if err != nil {
		return nil, err
	}
	recipient := common.HexToAddress(to)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkBalances(ctx, amount); err != nil {
		return nil, err
	}

	data, err := w.tokenABI.Pack("transfer", recipient, amount)
	if err != nil {
		return nil, fmt.Errorf("can't encode transfer call: %w", err)
	}

	nonce, err := w.client.PendingNonceAt(ctx, w.from)
	if err != nil {
		return nil, fmt.Errorf("can't get nonce: %w", err)
	}
	gasPrice, err := w.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't get gas price: %w", err)
	}
	gas, err := w.client.EstimateGas(ctx, ethereum.CallMsg{From: w.from, To: &w.token, Data: data})
	if err != nil {
		return nil, fmt.Errorf("can't estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &w.token,
		Value:    big.NewInt(0),
		Gas:      gas,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(w.chainID), w.key)
	if err != nil {
		return nil, fmt.Errorf("can't sign transaction: %w", err)
	}
	hash := signed.Hash()
	if record != nil {
		if err := record(hash.Hex()); err != nil {
			return nil, err
		}
	}

	if err := w.client.SendTransaction(ctx, signed); err != nil {
		if !w.known(ctx, hash) {
			return nil, fmt.Errorf("%w: %s: %v", ErrBroadcastFailed, hash.Hex(), err)
		}
		zap.L().Warn("send reported an error but the node knows the transaction", zap.String("hash", hash.Hex()), zap.Error(err))
	}
	zap.L().Info("token transfer sent", zap.String("hash", hash.Hex()), zap.String("to", recipient.Hex()), zap.String("amount", amountToken))

	receipt, err := w.waitMined(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransferUnconfirmed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s", ErrTransferReverted, hash.Hex())
	}

	header, err := w.client.HeaderByNumber(ctx, receipt.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: can't get block header: %v", ErrTransferUnconfirmed, hash.Hex(), err)
	}

	return &domain.TransferReceipt{Hash: hash.Hex(), Timestamp: int64(header.Time)}, nil
}

// known reports whether the node has seen the transaction. Lookup errors count
// as known since a resend could pay twice.
func (w *Wallet) known(ctx context.Context, hash common.Hash) bool {
	_, _, err := w.client.TransactionByHash(ctx, hash)
	return !errors.Is(err, ethereum.NotFound)
}

func (w *Wallet) checkBalances(ctx context.Context, amount *big.Int) error {
	data, err := w.tokenABI.Pack("balanceOf", w.from)
	if err != nil {
		return err
	}
	out, err := w.client.CallContract(ctx, ethereum.CallMsg{To: &w.token, Data: data}, nil)
	if err != nil {
		return fmt.Errorf("can't read token balance: %w", err)
	}
	values, err := w.tokenABI.Unpack("balanceOf", out)
	if err != nil {
		return fmt.Errorf("can't decode token balance: %w", err)
	}
	tokenBalance, ok := values[0].(*big.Int)
	if !ok {
		return errors.New("can't decode token balance")
	}
	if tokenBalance.Cmp(amount) < 0 {
		return ErrInsufficientTokenBalance
	}

	native, err := w.client.BalanceAt(ctx, w.from, nil)
	if err != nil {
		return fmt.Errorf("can't read native balance: %w", err)
	}
	if native.Sign() <= 0 {
		return ErrInsufficientGas
	}
	return nil
}

func (w *Wallet) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, receiptTimeout)
	defer cancel()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := w.client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("can't get receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// ParseUnits converts a decimal token amount to integer base units.
func ParseUnits(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amount)
	}
	if !d.IsPositive() {
		return nil, fmt.Errorf("%w: %q must be positive", ErrInvalidAmount, amount)
	}
	if exp := d.Exponent(); exp < -maxAmountExponent || exp > maxAmountExponent {
		return nil, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, amount)
	}
	units := d.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return nil, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, amount, decimals)
	}
	return units.BigInt(), nil
}

// Disabled is used when no signer is configured.
type Disabled struct{}

func (Disabled) Transfer(context.Context, string, string, RecordFunc) (*domain.TransferReceipt, error) {
	return nil, ErrWalletDisabled
}
