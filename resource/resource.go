// Package resource defines the parameter shapes of resource creation: the
// resource kind, lifecycle flags, badge permissions, authority mappings and
// initial supply. These are the values the transaction compiler passes to the
// built-in new_resource function.
package resource

import "github.com/ores-network/gores/common"

// Type describes the physical kind of a resource. Fungible resources carry a
// divisibility; non-fungible resources are tracked per unit id.
type Type struct {
	Fungible     bool  `json:"fungible"`
	Divisibility uint8 `json:"divisibility,omitempty"`
}

// FungibleType returns the descriptor for a fungible resource with the given
// divisibility.
func FungibleType(divisibility uint8) Type {
	return Type{Fungible: true, Divisibility: divisibility}
}

// NonFungibleType is the descriptor for a non-fungible resource.
var NonFungibleType = Type{}

// Lifecycle flags of a resource.
const (
	FlagMintable uint16 = 1 << iota
	FlagBurnable
)

// Permissions granted to badge holders through the authority mapping.
const (
	PermMayMint uint16 = 1 << iota
	PermMayBurn
)

// SingleAuthority returns an authority mapping granting one badge the given
// permission bitmask.
func SingleAuthority(badge common.Address, permissions uint16) map[common.Address]uint16 {
	return map[common.Address]uint16{badge: permissions}
}

// Supply is a fixed initial supply. Exactly one of the two fields is set.
type Supply struct {
	Fungible    *common.Decimal         `json:"fungible,omitempty"`
	NonFungible map[common.NftID][]byte `json:"non_fungible,omitempty"`
}

// FungibleSupply returns a fixed fungible supply.
func FungibleSupply(amount common.Decimal) *Supply {
	return &Supply{Fungible: &amount}
}

// NonFungibleSupply returns a fixed non-fungible supply mapping unit ids to
// their serialized immutable data.
func NonFungibleSupply(entries map[common.NftID][]byte) *Supply {
	copied := make(map[common.NftID][]byte, len(entries))
	for id, data := range entries {
		copied[id] = data
	}
	return &Supply{NonFungible: copied}
}

// CreateParams is the full parameter tuple of the built-in new_resource
// function: kind, metadata, lifecycle flags, the initial permission bitmask
// placeholder, the authority mapping, and the optional fixed supply. A nil
// Supply means mutable supply governed by the authority mapping.
type CreateParams struct {
	Type               Type
	Metadata           map[string]string
	Flags              uint16
	InitialPermissions uint16
	Authorities        map[common.Address]uint16
	Supply             *Supply
}
