package models

// WorkType is the kind of job an earning came from
type WorkType string

const (
	WorkTypeMarmita  WorkType = "Marmita"
	WorkTypePizzaria WorkType = "Pizzaria"
	WorkTypeApp      WorkType = "App"
	WorkTypeOther    WorkType = "Outro"
)

// WorkTypes lists the valid work types in display order
var WorkTypes = []WorkType{WorkTypeMarmita, WorkTypePizzaria, WorkTypeApp, WorkTypeOther}

// PaymentMethod is how an earning was paid
type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "Pix"
	PaymentCash PaymentMethod = "Dinheiro"
	PaymentCard PaymentMethod = "Cartão"
	PaymentApp  PaymentMethod = "App"
)

var PaymentMethods = []PaymentMethod{PaymentPix, PaymentCash, PaymentCard, PaymentApp}

// ExpenseCategory classifies an expense
type ExpenseCategory string

const (
	CategoryFuel        ExpenseCategory = "Combustível"
	CategoryMaintenance ExpenseCategory = "Manutenção"
	CategoryOil         ExpenseCategory = "Óleo"
	CategoryUnexpected  ExpenseCategory = "Imprevistos"
	CategoryFine        ExpenseCategory = "Multa"
	CategoryOther       ExpenseCategory = "Outros"
)

var ExpenseCategories = []ExpenseCategory{
	CategoryFuel, CategoryMaintenance, CategoryOil, CategoryUnexpected, CategoryFine, CategoryOther,
}

func (w WorkType) Valid() bool {
	for _, v := range WorkTypes {
		if v == w {
			return true
		}
	}
	return false
}

func (p PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if v == p {
			return true
		}
	}
	return false
}

func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Earning is a single income entry
type Earning struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"user_id" db:"user_id"`
	ShiftID       *string       `json:"shift_id" db:"shift_id"`
	Date          int64         `json:"date" db:"date"`
	Amount        float64       `json:"amount" db:"amount"`
	WorkType      WorkType      `json:"work_type" db:"work_type"`
	Neighborhood  string        `json:"neighborhood" db:"neighborhood"`
	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	Note          *string       `json:"note" db:"note"`
	CreatedAt     int64         `json:"created_at" db:"created_at"`
}

// Expense is a single cost entry
type Expense struct {
	ID          string          `json:"id" db:"id"`
	UserID      string          `json:"user_id" db:"user_id"`
	ShiftID     *string         `json:"shift_id" db:"shift_id"`
	Date        int64           `json:"date" db:"date"`
	Amount      float64         `json:"amount" db:"amount"`
	Category    ExpenseCategory `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	CreatedAt   int64           `json:"created_at" db:"created_at"`
}

// CreateEarningRequest is the body of POST /api/earnings.
// Date accepts RFC3339 or YYYY-MM-DD; empty means now.
type CreateEarningRequest struct {
	Date          string        `json:"date"`
	Amount        float64       `json:"amount"`
	WorkType      WorkType      `json:"work_type"`
	Neighborhood  string        `json:"neighborhood"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Note          *string       `json:"note"`
}

// CreateExpenseRequest is the body of POST /api/expenses
type CreateExpenseRequest struct {
	Date        string          `json:"date"`
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
}
