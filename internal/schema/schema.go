package schema

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Accepted values for the categoria field.
const (
	CategoriaFruta   = "Fruta"
	CategoriaLegume  = "Legume"
	CategoriaVerdura = "Verdura"
)

// Failure messages, one per rule. The HTTP layer and the client cache
// surface these verbatim, so the text is part of the API contract.
const (
	MsgNomeCurto         = "O nome deve ter pelo menos 5 caracteres."
	MsgPrecoInvalido     = "O preço deve ser maior que 0."
	MsgCategoriaInvalida = "Categoria inválida. Escolha Fruta, Legume ou Verdura."
	MsgEstoqueNegativo   = "O estoque não pode ser negativo."
	MsgUnidadeVazia      = "A unidade é obrigatória (ex: kg, un)."
)

// ProductInput is a product write payload before validation. Pointer
// fields distinguish "omitted" from "zero": descricao normalizes to the
// empty string and estoque defaults to 0. Preco travels as decimal text
// end to end; it is never held as a binary float.
type ProductInput struct {
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
	Preco     string  `json:"preco"`
	Categoria string  `json:"categoria"`
	Estoque   *int    `json:"estoque"`
	Unidade   string  `json:"unidade"`
}

// DescricaoOrEmpty returns the descricao field normalized for storage.
func (in ProductInput) DescricaoOrEmpty() string {
	if in.Descricao == nil {
		return ""
	}
	return *in.Descricao
}

// EstoqueOrZero returns the estoque field, defaulting to 0 when omitted.
func (in ProductInput) EstoqueOrZero() int {
	if in.Estoque == nil {
		return 0
	}
	return *in.Estoque
}

// CanonicalPreco returns preco in the fixed two-decimal text form the
// store persists, matching the numeric(10,2) column. Only meaningful
// once validation has passed.
func (in ProductInput) CanonicalPreco() string {
	d, err := decimal.NewFromString(strings.TrimSpace(in.Preco))
	if err != nil {
		return in.Preco
	}
	return d.StringFixed(2)
}

// Result is the outcome of validating a product payload.
type Result struct {
	Valido bool     `json:"valido"`
	Erros  []string `json:"erros,omitempty"`
}

// Validate applies every rule to in and reports all violations at once,
// in field order: nome, preco, categoria, estoque, unidade. It is pure
// and deterministic, so the client-side pre-check and the server-side
// boundary check reject exactly the same payloads.
func Validate(in ProductInput) Result {
	var erros []string

	if len([]rune(strings.TrimSpace(in.Nome))) < 5 {
		erros = append(erros, MsgNomeCurto)
	}
	if preco, err := decimal.NewFromString(strings.TrimSpace(in.Preco)); err != nil || !preco.IsPositive() {
		erros = append(erros, MsgPrecoInvalido)
	}
	switch in.Categoria {
	case CategoriaFruta, CategoriaLegume, CategoriaVerdura:
	default:
		erros = append(erros, MsgCategoriaInvalida)
	}
	if in.EstoqueOrZero() < 0 {
		erros = append(erros, MsgEstoqueNegativo)
	}
	if len(in.Unidade) < 1 {
		erros = append(erros, MsgUnidadeVazia)
	}

	if len(erros) > 0 {
		return Result{Valido: false, Erros: erros}
	}
	return Result{Valido: true}
}

// ValidationError carries the full ordered message list of a rejected write.
type ValidationError struct {
	Erros []string
}

func (e *ValidationError) Error() string {
	return "invalid product payload: " + strings.Join(e.Erros, " ")
}

// Check is Validate in error form, for callers that propagate failures
// rather than render them.
func Check(in ProductInput) error {
	if res := Validate(in); !res.Valido {
		return &ValidationError{Erros: res.Erros}
	}
	return nil
}
