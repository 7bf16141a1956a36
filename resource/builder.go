package resource

import (
	"github.com/ores-network/gores/common"
	"github.com/ores-network/gores/params"
)

// Builder accumulates metadata and produces the new_resource parameter tuple
// for each creation mode. Fixed-supply and mutable-supply modes are separate
// constructors: a fixed resource gets no mint authority, a mutable one gets a
// non-empty authority mapping and no initial supply.
type Builder struct {
	metadata map[string]string
}

// NewBuilder starts a new resource builder.
func NewBuilder() *Builder {
	return &Builder{metadata: make(map[string]string)}
}

// Metadata adds a metadata attribute. Duplicate keys overwrite.
func (b *Builder) Metadata(name, value string) *Builder {
	b.metadata[name] = value
	return b
}

func (b *Builder) metadataCopy() map[string]string {
	copied := make(map[string]string, len(b.metadata))
	for k, v := range b.metadata {
		copied[k] = v
	}
	return copied
}

func (b *Builder) mutable(typ Type, mintBadge common.Address) CreateParams {
	return CreateParams{
		Type:        typ,
		Metadata:    b.metadataCopy(),
		Flags:       FlagMintable | FlagBurnable,
		Authorities: SingleAuthority(mintBadge, PermMayMint|PermMayBurn),
	}
}

func (b *Builder) fixed(typ Type, supply *Supply) CreateParams {
	return CreateParams{
		Type:        typ,
		Metadata:    b.metadataCopy(),
		Authorities: map[common.Address]uint16{},
		Supply:      supply,
	}
}

// NewTokenMutable describes a token resource with mutable supply.
func (b *Builder) NewTokenMutable(mintBadge common.Address) CreateParams {
	return b.mutable(FungibleType(params.TokenDivisibility), mintBadge)
}

// NewTokenFixed describes a token resource with fixed supply.
func (b *Builder) NewTokenFixed(supply common.Decimal) CreateParams {
	return b.fixed(FungibleType(params.TokenDivisibility), FungibleSupply(supply))
}

// NewBadgeMutable describes a badge resource with mutable supply.
func (b *Builder) NewBadgeMutable(mintBadge common.Address) CreateParams {
	return b.mutable(FungibleType(params.BadgeDivisibility), mintBadge)
}

// NewBadgeFixed describes a badge resource with fixed supply.
func (b *Builder) NewBadgeFixed(supply common.Decimal) CreateParams {
	return b.fixed(FungibleType(params.BadgeDivisibility), FungibleSupply(supply))
}

// NewNftMutable describes a non-fungible resource with mutable supply.
func (b *Builder) NewNftMutable(mintBadge common.Address) CreateParams {
	return b.mutable(NonFungibleType, mintBadge)
}

// NewNftFixed describes a non-fungible resource with a fixed set of units.
func (b *Builder) NewNftFixed(entries map[common.NftID][]byte) CreateParams {
	return b.fixed(NonFungibleType, NonFungibleSupply(entries))
}
