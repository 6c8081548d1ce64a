package dto

type Settings struct {
	LowStockThreshold int
	SalesWindowDays   int
}

func DefaultSettings() Settings {
	return Settings{LowStockThreshold: 5, SalesWindowDays: 30}
}
