package tx

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"

	"github.com/ores-network/gores/common"
)

// Errors returned by ParseResourceAmount.
var (
	ErrInvalidAmount          = errors.New("tx: invalid resource amount")
	ErrInvalidNftID           = errors.New("tx: invalid non-fungible id in resource amount")
	ErrInvalidResourceAddress = errors.New("tx: invalid resource address")
	ErrMissingResourceAddress = errors.New("tx: missing resource address")
)

// ResourceAmount is some quantity of one resource: either a fungible decimal
// amount, or a set of non-fungible unit ids. Immutable once constructed.
type ResourceAmount struct {
	fungible        bool
	amount          common.Decimal
	ids             mapset.Set
	resourceAddress common.Address
}

// NewFungibleAmount returns a fungible resource amount.
func NewFungibleAmount(amount common.Decimal, resourceAddress common.Address) *ResourceAmount {
	return &ResourceAmount{fungible: true, amount: amount, resourceAddress: resourceAddress}
}

// NewNonFungibleAmount returns a non-fungible resource amount holding the
// given unit ids. Duplicates collapse.
func NewNonFungibleAmount(ids []common.NftID, resourceAddress common.Address) *ResourceAmount {
	set := mapset.NewSet()
	for _, id := range ids {
		set.Add(id)
	}
	return &ResourceAmount{ids: set, resourceAddress: resourceAddress}
}

// ParseResourceAmount parses the compact textual resource specification:
//
//	"<amount>,<resource address>"            fungible
//	"#<id>,#<id>,...,<resource address>"     non-fungible
//
// The input is trimmed as a whole and split on commas; the last token is
// always the resource address.
func ParseResourceAmount(s string) (*ResourceAmount, error) {
	tokens := strings.Split(strings.TrimSpace(s), ",")
	if len(tokens) < 2 {
		return nil, ErrMissingResourceAddress
	}

	resourceAddress, err := common.ParseAddress(tokens[len(tokens)-1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResourceAddress, err)
	}

	if strings.HasPrefix(tokens[0], "#") {
		set := mapset.NewSet()
		for _, token := range tokens[:len(tokens)-1] {
			if !strings.HasPrefix(token, "#") {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNftID, token)
			}
			id, err := common.ParseNftID(token[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNftID, token)
			}
			set.Add(id)
		}
		return &ResourceAmount{ids: set, resourceAddress: resourceAddress}, nil
	}

	if len(tokens) != 2 {
		return nil, fmt.Errorf("%w: expected amount and resource address", ErrInvalidAmount)
	}
	amount, err := common.ParseDecimal(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, tokens[0])
	}
	return &ResourceAmount{fungible: true, amount: amount, resourceAddress: resourceAddress}, nil
}

// IsFungible reports whether the amount is a fungible quantity.
func (ra *ResourceAmount) IsFungible() bool {
	return ra.fungible
}

// Amount returns the decimal amount, or the cardinality of the id set for a
// non-fungible amount.
func (ra *ResourceAmount) Amount() common.Decimal {
	if ra.fungible {
		return ra.amount
	}
	return common.NewDecimal(int64(ra.ids.Cardinality()))
}

// ResourceAddress returns the address of the resource.
func (ra *ResourceAmount) ResourceAddress() common.Address {
	return ra.resourceAddress
}

// NftIDs returns the non-fungible unit ids in ascending order, or nil for a
// fungible amount. The order is fixed so instruction emission stays
// deterministic.
func (ra *ResourceAmount) NftIDs() []common.NftID {
	if ra.fungible || ra.ids == nil {
		return nil
	}
	ids := make([]common.NftID, 0, ra.ids.Cardinality())
	for _, e := range ra.ids.ToSlice() {
		ids = append(ids, e.(common.NftID))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Cmp(ids[j]) < 0 })
	return ids
}

// String formats the amount back into the textual specification accepted by
// ParseResourceAmount.
func (ra *ResourceAmount) String() string {
	if ra.fungible {
		return ra.amount.String() + "," + ra.resourceAddress.String()
	}
	var sb strings.Builder
	for _, id := range ra.NftIDs() {
		sb.WriteByte('#')
		sb.WriteString(id.String())
		sb.WriteByte(',')
	}
	sb.WriteString(ra.resourceAddress.String())
	return sb.String()
}
