package models

import "errors"

// Domain errors shared by repositories, services and controllers
var (
	ErrFichaNotFound    = errors.New("ficha não encontrada")
	ErrFichaInvalida    = errors.New("ficha inválida")
	ErrClienteNotFound  = errors.New("cliente não encontrado")
	ErrClienteDuplicado = errors.New("já existe um cliente com este nome")
)
