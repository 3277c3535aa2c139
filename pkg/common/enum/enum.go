package enum

type GameType string
type KVStoreType string
type PoolSource string

const (
	GameTypeKeno        GameType = "keno"
	GameTypeEuroJackpot GameType = "eurojackpot"
	GameTypeLotto6aus49 GameType = "lotto6aus49"
	GameTypeCustom      GameType = "custom"
)

const (
	KVStoreTypeBadger KVStoreType = "badger"
)

const (
	// PoolSourceLiteral takes the pool from an explicit number list.
	PoolSourceLiteral PoolSource = "literal"
	// PoolSourceHistory unions every number drawn within a date range.
	PoolSourceHistory PoolSource = "history"
)
