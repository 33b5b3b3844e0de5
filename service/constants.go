package service

const (
	MonthsPerYear = 12

	MaxPurchasePrice = 1_000_000_000.0 // 1 billón
	MaxInterestRate  = 10.0            // 1000% anual, como fracción
	MaxTermYears     = 50.0            // 50 años
	MaxAppreciation  = 1.0             // ±100% anual

	// Cota de cada componente del intervalo de pago.
	MaxIntervalYears = 50
	DaysPerYear      = 366

	// Saldo residual (medio centavo) que se considera pagado.
	BalanceTolerance = 0.005
	// Fracción mínima del saldo que debe amortizar el primer pago; por debajo
	// el saldo en punto flotante deja de bajar.
	MinFirstPrincipalFraction = 1e-9

	// Deducción estándar (contribuyente individual) del año fiscal modelado.
	StandardDeduction = 13_850.00
	// Tasa marginal plana usada para estimar el ahorro fiscal.
	EstimatedMarginalTaxRate = 0.4

	// Límites de términos para comparación
	MaxComparedTerms = 10
)

var DefaultComparedTermsYears = []float64{10, 15, 20, 30}
