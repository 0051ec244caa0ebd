package repo

import (
	"github.com/GlebRadaev/presaleadmin/internal/pg"
	transferrepo "github.com/GlebRadaev/presaleadmin/internal/repo/transfer-repo"
	"github.com/GlebRadaev/presaleadmin/internal/service/transactionservice"
)

type Repositories struct {
	TransferRepo transactionservice.TransferRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	transferRepo := transferrepo.New(conn, txManager)

	return &Repositories{
		TransferRepo: transferRepo,
	}
}
