package market

import "github.com/arjunmehra/folio-tracker/backend/internal/models"

// Static quote catalogs, served when the live APIs are unreachable so the
// dashboard always has something to price against. Values are indicative
// INR figures, not live data.

var stocksCatalog = []models.MarketQuote{
	{ID: "RELIANCE.BSE", Name: "Reliance Industries", Ticker: "RELIANCE", Class: models.AssetClassStock, Price: 2456.75, Change24h: 1.2, MarketCap: "16.6T", Volume: "4.1M"},
	{ID: "HDFCBANK.BSE", Name: "HDFC Bank", Ticker: "HDFCBANK", Class: models.AssetClassStock, Price: 1678.30, Change24h: -0.4, MarketCap: "12.7T", Volume: "6.8M"},
	{ID: "INFY.BSE", Name: "Infosys", Ticker: "INFY", Class: models.AssetClassStock, Price: 1524.90, Change24h: 0.8, MarketCap: "6.3T", Volume: "5.2M"},
	{ID: "TCS.BSE", Name: "Tata Consultancy Services", Ticker: "TCS", Class: models.AssetClassStock, Price: 3890.45, Change24h: 0.3, MarketCap: "14.1T", Volume: "1.9M"},
	{ID: "ICICIBANK.BSE", Name: "ICICI Bank", Ticker: "ICICIBANK", Class: models.AssetClassStock, Price: 1089.60, Change24h: -1.1, MarketCap: "7.6T", Volume: "9.4M"},
}

var cryptoCatalog = []models.MarketQuote{
	{ID: "bitcoin", Name: "Bitcoin", Ticker: "BTC", Class: models.AssetClassCrypto, Price: 5614230.00, Change24h: 2.4, MarketCap: "110.2T", Volume: "2.6T"},
	{ID: "ethereum", Name: "Ethereum", Ticker: "ETH", Class: models.AssetClassCrypto, Price: 294560.00, Change24h: 1.7, MarketCap: "35.4T", Volume: "1.4T"},
	{ID: "tether", Name: "Tether", Ticker: "USDT", Class: models.AssetClassCrypto, Price: 83.12, Change24h: 0.0, MarketCap: "9.6T", Volume: "4.3T"},
	{ID: "binancecoin", Name: "BNB", Ticker: "BNB", Class: models.AssetClassCrypto, Price: 48230.00, Change24h: -0.6, MarketCap: "7.2T", Volume: "180.5B"},
	{ID: "solana", Name: "Solana", Ticker: "SOL", Class: models.AssetClassCrypto, Price: 12480.00, Change24h: 3.8, MarketCap: "5.8T", Volume: "420.7B"},
	{ID: "ripple", Name: "XRP", Ticker: "XRP", Class: models.AssetClassCrypto, Price: 52.40, Change24h: -1.9, MarketCap: "2.9T", Volume: "310.2B"},
	{ID: "cardano", Name: "Cardano", Ticker: "ADA", Class: models.AssetClassCrypto, Price: 38.75, Change24h: 0.9, MarketCap: "1.4T", Volume: "98.6B"},
	{ID: "dogecoin", Name: "Dogecoin", Ticker: "DOGE", Class: models.AssetClassCrypto, Price: 11.20, Change24h: 5.1, MarketCap: "1.6T", Volume: "210.3B"},
}

// insuranceCatalog lists the purchasable policy products. Price is the
// annual premium; insurance has no market movement.
var insuranceCatalog = []models.MarketQuote{
	{ID: "term-life-1cr", Name: "Term Life Cover 1 Cr", Ticker: "TERM1CR", Class: models.AssetClassInsurance, Price: 14500.00},
	{ID: "health-family-10l", Name: "Family Health Cover 10 L", Ticker: "HLTH10L", Class: models.AssetClassInsurance, Price: 22300.00},
	{ID: "motor-comprehensive", Name: "Motor Comprehensive", Ticker: "MOTORC", Class: models.AssetClassInsurance, Price: 8650.00},
	{ID: "home-structure-50l", Name: "Home Structure Cover 50 L", Ticker: "HOME50L", Class: models.AssetClassInsurance, Price: 5400.00},
}

// StocksCatalog returns a copy of the static stock fallback catalog.
func StocksCatalog() []models.MarketQuote {
	return append([]models.MarketQuote(nil), stocksCatalog...)
}

// CryptoCatalog returns a copy of the static crypto fallback catalog.
func CryptoCatalog() []models.MarketQuote {
	return append([]models.MarketQuote(nil), cryptoCatalog...)
}

// InsuranceCatalog returns a copy of the insurance product catalog.
func InsuranceCatalog() []models.MarketQuote {
	return append([]models.MarketQuote(nil), insuranceCatalog...)
}
