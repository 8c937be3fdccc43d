package daftar

import "github.com/xraph/daftar/types"

// Money is re-exported from types package.
type Money = types.Money

// Entity is re-exported from types package.
type Entity = types.Entity

// Money constructors.
var (
	SAR        = types.SAR
	USD        = types.USD
	EUR        = types.EUR
	Zero       = types.Zero
	Sum        = types.Sum
	ParseMoney = types.ParseMoney
)

var NewEntity = types.NewEntity
