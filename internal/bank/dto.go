package bank

type TransferRequest struct {
	FromID int64   `json:"fromId"`
	ToID   int64   `json:"toId"`
	Amount float64 `json:"amount"`
}
