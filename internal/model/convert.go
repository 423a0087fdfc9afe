package model

// ConvertResult — результат конвертации суммы между двумя валютами.
// Result округлен до 2 знаков, Rate — подразумеваемый парный курс,
// округленный до 4 знаков.
type ConvertResult struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Result float64 `json:"result"`
	Rate   float64 `json:"rate"`
}
