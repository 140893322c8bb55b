package models

type AssetClass string

const (
	AssetClassStock     AssetClass = "stock"
	AssetClassCrypto    AssetClass = "crypto"
	AssetClassInsurance AssetClass = "insurance"
)

func (c AssetClass) Valid() bool {
	switch c {
	case AssetClassStock, AssetClassCrypto, AssetClassInsurance:
		return true
	}
	return false
}

type TransactionKind string

const (
	KindBuy    TransactionKind = "buy"
	KindSell   TransactionKind = "sell"
	KindCancel TransactionKind = "cancel" // insurance policies only
)

func (k TransactionKind) Valid() bool {
	switch k {
	case KindBuy, KindSell, KindCancel:
		return true
	}
	return false
}

// Transaction is one immutable ledger event. Records are append-only:
// never updated, never deleted. TotalValue is captured at record time and
// must not be recomputed from live prices later.
type Transaction struct {
	Seq        uint            `json:"-" gorm:"primaryKey;autoIncrement"`
	ID         string          `json:"id" gorm:"uniqueIndex;not null"`
	AssetID    string          `json:"asset_id" gorm:"not null;index"`
	AssetName  string          `json:"asset_name"`
	AssetClass AssetClass      `json:"asset_class" gorm:"not null;index"`
	Kind       TransactionKind `json:"kind" gorm:"not null"`
	Quantity   float64         `json:"quantity"`
	UnitPrice  float64         `json:"unit_price"`
	TotalValue float64         `json:"total_value"`
	// PolicyID names the originating buy transaction of the policy a cancel
	// applies to. Set on insurance cancels only; AssetID stays the product id.
	PolicyID  string `json:"policy_id,omitempty"`
	Timestamp int64  `json:"timestamp" gorm:"index"` // milliseconds since epoch
}

type BuyRequest struct {
	AssetID    string     `json:"asset_id" binding:"required"`
	AssetName  string     `json:"asset_name" binding:"required"`
	AssetClass AssetClass `json:"asset_class" binding:"required"`
	Quantity   float64    `json:"quantity"`
	UnitPrice  float64    `json:"unit_price"`
}

type SellRequest struct {
	AssetID  string  `json:"asset_id" binding:"required"`
	Quantity float64 `json:"quantity"`
	// UnitPrice overrides the live price when set; 0 means "sell at market".
	UnitPrice float64 `json:"unit_price"`
}
