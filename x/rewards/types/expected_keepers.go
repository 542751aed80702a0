package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the expected bank keeper methods used for minting
// emission and paying shares out of the module account.
type BankKeeper interface {
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// CommitteeKeeper is the round state machine whose proposal spacing must
// stay synchronized with the distribution interval.
type CommitteeKeeper interface {
	SetUpdateInterval(ctx context.Context, interval int64) error
}
