package chain

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/presaleadmin/internal/config"
)

const (
	tokenAddress = "0xb9c337151178cf0ec9a6b13a121c661065a80f36"
	recipient    = "0x52908400098527886E0F7030069857D2E4169EE7"
)

var transferSelector = []byte{0xa9, 0x05, 0x9c, 0xbb}

func NewMock(t *testing.T) (*Wallet, *MockEthClient) {
	ctrl := gomock.NewController(t)
	client := NewMockEthClient(ctrl)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	w, err := New(client, config.ChainConfig{
		ChainID:       56,
		TokenAddress:  tokenAddress,
		TokenDecimals: 18,
		SignerKey:     "0x" + hex.EncodeToString(crypto.FromECDSA(key)),
	})
	require.NoError(t, err)
	w.pollInterval = time.Millisecond
	return w, client
}

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

func balanceOf(n *big.Int) []byte {
	return common.LeftPadBytes(n.Bytes(), 32)
}

func TestNew(t *testing.T) {
	_, err := New(nil, config.ChainConfig{SignerKey: "not-a-key", TokenAddress: tokenAddress})
	assert.Error(t, err)

	key, _ := crypto.GenerateKey()
	_, err = New(nil, config.ChainConfig{SignerKey: hex.EncodeToString(crypto.FromECDSA(key)), TokenAddress: "0x12"})
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestDial_Disabled(t *testing.T) {
	_, err := Dial(context.Background(), config.ChainConfig{})
	assert.ErrorIs(t, err, ErrWalletDisabled)
}

func TestWallet_Transfer(t *testing.T) {
	w, client := NewMock(t)
	ctx := context.Background()

	var sent *types.Transaction
	gomock.InOrder(
		client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).Return(balanceOf(tokens(1000)), nil),
		client.EXPECT().BalanceAt(gomock.Any(), w.from, gomock.Nil()).Return(big.NewInt(1e15), nil),
		client.EXPECT().PendingNonceAt(gomock.Any(), w.from).Return(uint64(7), nil),
		client.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(3e9), nil),
		client.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(60000), nil),
		client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		}),
		client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, ethereum.NotFound),
		client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(100)}, nil),
		client.EXPECT().HeaderByNumber(gomock.Any(), big.NewInt(100)).Return(&types.Header{Time: 1700000000}, nil),
	)

	var recorded string
	receipt, err := w.Transfer(ctx, recipient, "100", func(hash string) error {
		assert.Nil(t, sent, "recorded after broadcast")
		recorded = hash
		return nil
	})

	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, sent.Hash().Hex(), receipt.Hash)
	assert.Equal(t, receipt.Hash, recorded)
	assert.Equal(t, int64(1700000000), receipt.Timestamp)

	assert.Equal(t, common.HexToAddress(tokenAddress), *sent.To())
	assert.Equal(t, uint64(7), sent.Nonce())
	assert.Equal(t, uint64(60000), sent.Gas())
	assert.True(t, bytes.HasPrefix(sent.Data(), transferSelector))
	assert.Equal(t, common.LeftPadBytes(common.HexToAddress(recipient).Bytes(), 32), sent.Data()[4:36])
	assert.Equal(t, tokens(100), new(big.Int).SetBytes(sent.Data()[36:68]))

	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(56)), sent)
	require.NoError(t, err)
	assert.Equal(t, w.from, sender)
}

func TestWallet_TransferRejected(t *testing.T) {
	tests := []struct {
		name        string
		to          string
		amount      string
		prepareMock func(w *Wallet, client *MockEthClient)
		expectedErr error
	}{
		{
			name:        "invalid address",
			to:          "0x1234",
			amount:      "1",
			prepareMock: func(*Wallet, *MockEthClient) {},
			expectedErr: ErrInvalidAddress,
		},
		{
			name:        "address without prefix",
			to:          "52908400098527886E0F7030069857D2E4169EE7",
			amount:      "1",
			prepareMock: func(*Wallet, *MockEthClient) {},
			expectedErr: ErrInvalidAddress,
		},
		{
			name:        "invalid amount",
			to:          recipient,
			amount:      "abc",
			prepareMock: func(*Wallet, *MockEthClient) {},
			expectedErr: ErrInvalidAmount,
		},
		{
			name:   "insufficient token balance",
			to:     recipient,
			amount: "100",
			prepareMock: func(w *Wallet, client *MockEthClient) {
				client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(balanceOf(tokens(99)), nil)
			},
			expectedErr: ErrInsufficientTokenBalance,
		},
		{
			name:   "insufficient gas",
			to:     recipient,
			amount: "100",
			prepareMock: func(w *Wallet, client *MockEthClient) {
				client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(balanceOf(tokens(100)), nil)
				client.EXPECT().BalanceAt(gomock.Any(), w.from, gomock.Any()).Return(big.NewInt(0), nil)
			},
			expectedErr: ErrInsufficientGas,
		},
		{
			name:   "reverted",
			to:     recipient,
			amount: "1",
			prepareMock: func(w *Wallet, client *MockEthClient) {
				client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(balanceOf(tokens(100)), nil)
				client.EXPECT().BalanceAt(gomock.Any(), gomock.Any(), gomock.Any()).Return(big.NewInt(1), nil)
				client.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(0), nil)
				client.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
				client.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(21000), nil)
				client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil)
				client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(1)}, nil)
			},
			expectedErr: ErrTransferReverted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, client := NewMock(t)
			tt.prepareMock(w, client)

			receipt, err := w.Transfer(context.Background(), tt.to, tt.amount, nil)

			assert.Nil(t, receipt)
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func expectSigned(client *MockEthClient) {
	client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Any()).Return(balanceOf(tokens(100)), nil)
	client.EXPECT().BalanceAt(gomock.Any(), gomock.Any(), gomock.Any()).Return(big.NewInt(1), nil)
	client.EXPECT().PendingNonceAt(gomock.Any(), gomock.Any()).Return(uint64(0), nil)
	client.EXPECT().SuggestGasPrice(gomock.Any()).Return(big.NewInt(1), nil)
	client.EXPECT().EstimateGas(gomock.Any(), gomock.Any()).Return(uint64(21000), nil)
}

func TestWallet_SendFails(t *testing.T) {
	w, client := NewMock(t)
	expectSigned(client)
	client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(errors.New("nonce too low"))
	client.EXPECT().TransactionByHash(gomock.Any(), gomock.Any()).Return(nil, false, ethereum.NotFound)

	_, err := w.Transfer(context.Background(), recipient, "1", nil)

	assert.ErrorIs(t, err, ErrBroadcastFailed)
	assert.Contains(t, err.Error(), "nonce too low")
}

func TestWallet_SendErrorButKnown(t *testing.T) {
	w, client := NewMock(t)
	expectSigned(client)
	client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(errors.New("i/o timeout"))
	client.EXPECT().TransactionByHash(gomock.Any(), gomock.Any()).Return(nil, true, nil)
	client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(5)}, nil)
	client.EXPECT().HeaderByNumber(gomock.Any(), big.NewInt(5)).Return(&types.Header{Time: 1700000000}, nil)

	receipt, err := w.Transfer(context.Background(), recipient, "1", nil)

	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), receipt.Timestamp)
}

func TestWallet_RecordFails(t *testing.T) {
	w, client := NewMock(t)
	expectSigned(client)
	errRecord := errors.New("database error")

	_, err := w.Transfer(context.Background(), recipient, "1", func(string) error { return errRecord })

	assert.ErrorIs(t, err, errRecord)
}

func TestWallet_UnconfirmedAfterBroadcast(t *testing.T) {
	tests := []struct {
		name        string
		prepareMock func(client *MockEthClient)
	}{
		{
			name: "receipt lookup fails",
			prepareMock: func(client *MockEthClient) {
				client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
		},
		{
			name: "header lookup fails",
			prepareMock: func(client *MockEthClient) {
				client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(5)}, nil)
				client.EXPECT().HeaderByNumber(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, client := NewMock(t)
			expectSigned(client)
			client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).Return(nil)
			tt.prepareMock(client)

			receipt, err := w.Transfer(context.Background(), recipient, "1", nil)

			assert.Nil(t, receipt)
			assert.ErrorIs(t, err, ErrTransferUnconfirmed)
		})
	}

	t.Run("context canceled while waiting", func(t *testing.T) {
		w, client := NewMock(t)
		expectSigned(client)
		ctx, cancel := context.WithCancel(context.Background())
		client.EXPECT().SendTransaction(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *types.Transaction) error {
			cancel()
			return nil
		})
		client.EXPECT().TransactionReceipt(gomock.Any(), gomock.Any()).Return(nil, ethereum.NotFound).AnyTimes()

		_, err := w.Transfer(ctx, recipient, "1", nil)

		assert.ErrorIs(t, err, ErrTransferUnconfirmed)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int32
		expected string
		wantErr  bool
	}{
		{amount: "1.5", decimals: 18, expected: "1500000000000000000"},
		{amount: "100", decimals: 0, expected: "100"},
		{amount: " 42 ", decimals: 2, expected: "4200"},
		{amount: "0.001", decimals: 2, wantErr: true},
		{amount: "abc", decimals: 18, wantErr: true},
		{amount: "0", decimals: 18, wantErr: true},
		{amount: "-1", decimals: 18, wantErr: true},
		{amount: "1e-2147483648", decimals: 18, wantErr: true},
		{amount: "1e2147483647", decimals: 18, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got, err := ParseUnits(tt.amount, tt.decimals)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Transfer(context.Background(), recipient, "1", nil)
	assert.ErrorIs(t, err, ErrWalletDisabled)
}
