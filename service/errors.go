package service

import "errors"

var (
	// ErrInvalidInput is returned when loan or tax parameters are out of range.
	ErrInvalidInput = errors.New("entrada inválida")

	// ErrNonAmortizingLoan is returned when the periodic payment never reduces
	// the balance, so the schedule would never reach payoff.
	ErrNonAmortizingLoan = errors.New("el préstamo no amortiza")

	// ErrNoEligibleTerms is returned when no compared term fits the
	// maximum monthly payment.
	ErrNoEligibleTerms = errors.New("no se encontraron plazos válidos con el pago mensual máximo especificado")
)
