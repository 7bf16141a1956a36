// Package params defines the well-known protocol constants of the gores
// execution environment: fixed package addresses and the names of the
// built-in blueprints the transaction compiler targets.
package params

import "github.com/ores-network/gores/common"

// Fixed addresses of the built-in packages. Builders take these through their
// configuration so tests can run against alternate fixed-address regimes.
var (
	// SystemPackage hosts the System blueprint (resource creation, minting,
	// package publishing).
	SystemPackage = common.MustParseAddress("0100000000000000000000000000000000000000000000000000" + "01")

	// AccountPackage hosts the Account blueprint.
	AccountPackage = common.MustParseAddress("0100000000000000000000000000000000000000000000000000" + "02")
)

// Member names of the built-in blueprints.
const (
	SystemBlueprint  = "System"
	AccountBlueprint = "Account"

	PublishPackageFunction = "publish_package"
	NewResourceFunction    = "new_resource"
	MintFunction           = "mint"

	NewAccountFunction        = "new"
	AccountWithBucketFunction = "with_bucket"
	WithdrawMethod            = "withdraw"
	WithdrawNftsMethod        = "withdraw_nfts"
)

// Default divisibilities used by the convenience helpers. Tokens subdivide to
// the full decimal scale; badges are indivisible.
const (
	TokenDivisibility = 18
	BadgeDivisibility = 0
)
