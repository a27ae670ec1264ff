package services

import "errors"

// ErrPeriodoInvalido is returned when a custom report window is incomplete or inverted
var ErrPeriodoInvalido = errors.New("período inválido: dataInicio e dataFim são obrigatórios e dataInicio deve ser anterior ou igual a dataFim")
