package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/GlebRadaev/presaleadmin/internal/chain"
	"github.com/GlebRadaev/presaleadmin/internal/config"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}

func (s *ApplicationSuite) TestWaitWithoutErrors() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.app.Wait(ctx, cancel)

	s.NoError(err)
}

func (s *ApplicationSuite) TestNewWalletDisabled() {
	wallet, err := newWallet(context.Background(), &config.Config{})

	s.Require().NoError(err)
	s.IsType(chain.Disabled{}, wallet)
}

func (s *ApplicationSuite) TestNewWalletBadKey() {
	cfg := &config.Config{Chain: config.ChainConfig{
		RPCURL:       "http://localhost:8545",
		SignerKey:    "not-a-key",
		TokenAddress: "0xb9c337151178cf0ec9a6b13a121c661065a80f36",
		ChainID:      56,
	}}

	_, err := newWallet(context.Background(), cfg)

	s.Error(err)
}
