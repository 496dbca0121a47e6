package headerchain

import (
	"context"

	"github.com/bitcoin-sv/headerchain/model"
)

// ClientI is implemented by the Server itself and by the HTTP Client.
type ClientI interface {
	Initialize(ctx context.Context, sender string, req *model.InitRequest) error
	UpdateBlockOffset(ctx context.Context, sender string, headers []string) error
	GetContractInfo(ctx context.Context) (*model.InfoResponse, error)
	Health(ctx context.Context, checkLiveness bool) (int, string, error)
}
