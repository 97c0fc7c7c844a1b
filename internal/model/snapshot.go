package model

// workHoursPerMonth is the assumed number of paid hours in a month, used to
// derive an hourly wage from monthly income.
const workHoursPerMonth = 160

// MonthlyExpenses holds the fixed recurring outflows of a user.
type MonthlyExpenses struct {
	Rent         float64 `json:"rent"`
	Food         float64 `json:"food"`
	ExistingEMIs float64 `json:"existing_emis"`
}

// FinancialSnapshot is a point-in-time view of a user's finances. It is built
// fresh for every scan and never mutated afterwards. DisposableIncome and
// HourlyWage are always derived here, never read from the source.
type FinancialSnapshot struct {
	MonthlyIncome    float64         `json:"monthly_income"`
	MonthlyExpenses  MonthlyExpenses `json:"monthly_expenses"`
	CurrentSavings   float64         `json:"current_savings"`
	DisposableIncome float64         `json:"disposable_income"`
	HourlyWage       float64         `json:"hourly_wage"`
}

// NewFinancialSnapshot builds a snapshot from raw source fields and computes
// the derived figures.
func NewFinancialSnapshot(income float64, expenses MonthlyExpenses, savings float64) FinancialSnapshot {
	return FinancialSnapshot{
		MonthlyIncome:    income,
		MonthlyExpenses:  expenses,
		CurrentSavings:   savings,
		DisposableIncome: income - (expenses.Rent + expenses.Food + expenses.ExistingEMIs),
		HourlyWage:       income / workHoursPerMonth,
	}
}

// FallbackSnapshot is the fixed profile used when the data source is missing
// or malformed. The derived fields are pre-baked rather than recomputed so the
// fallback is a constant, not a function of partial source data.
func FallbackSnapshot() FinancialSnapshot {
	return FinancialSnapshot{
		MonthlyIncome:    60000,
		CurrentSavings:   50000,
		DisposableIncome: 20000,
		HourlyWage:       375,
	}
}
