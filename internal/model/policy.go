package model

type Policy struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	IssueDate string `json:"issue_date"`
	Status    string `json:"status"`
}

type PolicyParty struct {
	PolicyID   int64  `json:"policy_id"`
	CustomerID int64  `json:"customer_id"`
	RoleCode   string `json:"role_code"`
}

type PremiumPayment struct {
	ID       int64   `json:"id"`
	PolicyID int64   `json:"policy_id"`
	DueDate  string  `json:"due_date"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"payment_status"`
}
