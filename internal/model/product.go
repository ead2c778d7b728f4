package model

// Product represents a catalog entry as stored and served by the API.
type Product struct {
	ID        int    `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Preco     string `json:"preco"`
	Categoria string `json:"categoria"`
	Estoque   int    `json:"estoque"`
	Unidade   string `json:"unidade"`
}
