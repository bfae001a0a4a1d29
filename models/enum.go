package models

type OrderType string
type ExecutionType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"

	ExecutionTypeOffer ExecutionType = "OFFER"
	ExecutionTypeAsk   ExecutionType = "ASK"
)
