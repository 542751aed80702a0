package keeper

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/ed25519"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdkstd "github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	committeekeeper "github.com/attest-chain/attest/x/committee/keeper"
	committeetypes "github.com/attest-chain/attest/x/committee/types"
	rewardskeeper "github.com/attest-chain/attest/x/rewards/keeper"
	rewardstypes "github.com/attest-chain/attest/x/rewards/types"
)

// GenesisTime is the block time test contexts start at.
var GenesisTime = time.Unix(1_700_000_000, 0).UTC()

// MockCollateralKeeper is a settable stand-in for the escrow
// collaborator's locked-collateral check.
type MockCollateralKeeper struct {
	eligible map[string]bool
}

// NewMockCollateralKeeper returns an empty mock; no candidate is
// eligible until Allow is called.
func NewMockCollateralKeeper() *MockCollateralKeeper {
	return &MockCollateralKeeper{eligible: make(map[string]bool)}
}

// Allow marks a candidate as having posted collateral
func (m *MockCollateralKeeper) Allow(addr string) {
	m.eligible[addr] = true
}

// Revoke withdraws a candidate's collateral
func (m *MockCollateralKeeper) Revoke(addr string) {
	delete(m.eligible, addr)
}

// IsEligible implements committeetypes.CollateralKeeper
func (m *MockCollateralKeeper) IsEligible(_ context.Context, candidate sdk.AccAddress) bool {
	return m.eligible[candidate.String()]
}

// Fixture bundles both module keepers with their shared dependencies.
type Fixture struct {
	Committee  *committeekeeper.Keeper
	Rewards    *rewardskeeper.Keeper
	Bank       bankkeeper.Keeper
	Collateral *MockCollateralKeeper
	Ctx        sdk.Context
	Authority  string
	Treasury   sdk.AccAddress
}

// Setup creates both module keepers over an in-memory multistore with
// real auth and bank keepers, wired to each other the way the app would.
func Setup(t testing.TB) *Fixture {
	committeeStoreKey := storetypes.NewKVStoreKey(committeetypes.StoreKey)
	rewardsStoreKey := storetypes.NewKVStoreKey(rewardstypes.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(committeeStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(rewardsStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	sdkstd.RegisterInterfaces(registry)
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)

	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	maccPerms := map[string][]string{
		authtypes.FeeCollectorName: nil,
		rewardstypes.ModuleName:    {authtypes.Minter},
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	collateral := NewMockCollateralKeeper()

	rewardsKeeper := rewardskeeper.NewKeeper(
		rewardsStoreKey,
		bankKeeper,
		authority.String(),
	)
	committeeKeeper := committeekeeper.NewKeeper(
		committeeStoreKey,
		collateral,
		rewardsKeeper,
		authority.String(),
	)
	rewardsKeeper.SetCommitteeKeeper(committeeKeeper)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Height: 1, Time: GenesisTime}, false, log.NewNopLogger())

	treasury := sdk.AccAddress(ed25519.GenPrivKey().PubKey().Address())

	committeeKeeper.InitGenesis(ctx, *committeetypes.DefaultGenesis())

	rewardsGenesis := rewardstypes.DefaultGenesis()
	rewardsGenesis.Params.TreasuryAddress = treasury.String()
	require.NoError(t, rewardsGenesis.Validate())
	rewardsKeeper.InitGenesis(ctx, *rewardsGenesis)

	return &Fixture{
		Committee:  committeeKeeper,
		Rewards:    rewardsKeeper,
		Bank:       bankKeeper,
		Collateral: collateral,
		Ctx:        ctx,
		Authority:  authority.String(),
		Treasury:   treasury,
	}
}

// TestAddr generates a fresh bech32 account address
func TestAddr() string {
	return sdk.AccAddress(ed25519.GenPrivKey().PubKey().Address()).String()
}

// AtTime returns the fixture context rebased to the given block time
func (f *Fixture) AtTime(t time.Time) sdk.Context {
	return f.Ctx.WithBlockTime(t)
}

// FundModule mints coins straight into the rewards module account, the
// way the job-intake escrow would stage extra payments.
func (f *Fixture) FundModule(t testing.TB, ctx sdk.Context, coins sdk.Coins) {
	require.NoError(t, f.Bank.MintCoins(ctx, rewardstypes.ModuleName, coins))
}

// Coin is shorthand for an sdk.Coin with an Int amount
func Coin(denom string, amount int64) sdk.Coin {
	return sdk.NewCoin(denom, math.NewInt(amount))
}
