package sheets

// Payloads enviados al script. Los nombres de campo siguen el contrato del script
// (camelCase); precios y totales viajan como texto decimal.

type wireUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

type wireProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	CreatedAt   string `json:"createdAt"`
}

type wireOrder struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Date      string `json:"date"`
	Address   string `json:"address"`
	Total     string `json:"total"`
	Status    string `json:"status"`
}
