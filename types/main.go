package types

type TradeType string

var (
	TypeBuy  TradeType = "buy"
	TypeSell TradeType = "sell"
)

func (t TradeType) Valid() bool {
	return t == TypeBuy || t == TypeSell
}

type InviteStatus string

var (
	InviteStatusActive   InviteStatus = "active"
	InviteStatusInactive InviteStatus = "inactive"
)

func (s InviteStatus) Valid() bool {
	return s == InviteStatusActive || s == InviteStatusInactive
}

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)

type StoreDriver = string

var (
	StoreDriverMemory   StoreDriver = "memory"
	StoreDriverPostgres StoreDriver = "postgres"
)
