package entidade

import (
	"gorm.io/gorm"
)

// As três entidades negociáveis da rede. O vínculo com negociações é
// polimórfico (tipoNegociavel + negociavelId), então não há foreign key
// declarada aqui.

// Operadora é uma operadora de plano de saúde credenciada.
type Operadora struct {
	gorm.Model
	Nome        string `json:"nome"`
	CNPJ        string `json:"cnpj" gorm:"uniqueIndex"`
	RegistroANS string `json:"registroAns" gorm:"uniqueIndex"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	UF          string `json:"uf"`
}

// Profissional é um profissional de saúde credenciado.
type Profissional struct {
	gorm.Model
	Nome             string `json:"nome"`
	Sobrenome        string `json:"sobrenome"`
	CPF              string `json:"cpf" gorm:"uniqueIndex"`
	ConselhoRegional string `json:"conselhoRegional"` // ex.: CRM, CRO, CREFITO
	NumeroConselho   string `json:"numeroConselho"`
	UFConselho       string `json:"ufConselho"`
	Especialidade    string `json:"especialidade"`
	Email            string `json:"email"`
	Telefone         string `json:"telefone"`
}

// Clinica é uma clínica ou serviço de saúde credenciado.
type Clinica struct {
	gorm.Model
	Nome          string `json:"nome"`
	RazaoSocial   string `json:"razaoSocial"`
	CNPJ          string `json:"cnpj" gorm:"uniqueIndex"`
	CNES          string `json:"cnes"`
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	UF            string `json:"uf"`
	ResponsavelID uint   `json:"responsavelId"`
}
