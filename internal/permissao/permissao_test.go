package permissao

import (
	"testing"

	"github.com/ConectaSaude/api-rede/internal/models"
	"github.com/ConectaSaude/api-rede/internal/papel"
	"github.com/ConectaSaude/api-rede/internal/usuario"
)

func usuarioCom(id uint, papeis ...string) *usuario.Usuario {
	u := &usuario.Usuario{}
	u.ID = id
	for _, nome := range papeis {
		u.Papeis = append(u.Papeis, papel.Papel{Nome: nome})
	}
	return u
}

func negociacaoBase() *models.Negociacao {
	n := &models.Negociacao{
		Status:              models.StatusPending,
		CicloNegociacao:     1,
		MaxCiclosPermitidos: 3,
		TipoNegociavel:      models.TipoProfissional,
		NegociavelID:        42,
		CriadorID:           7,
	}
	n.ID = 1
	return n
}

func TestPodeAprovarInternamente_criadorNuncaAprovaAPropria(t *testing.T) {
	n := negociacaoBase()
	todos := []string{
		papel.Diretor, papel.GerenteComercial, papel.Comercial,
		papel.AdminOperadora, papel.Profissional, papel.AdminClinica,
	}
	// criador (id 7) com qualquer combinação de papéis não-elevados
	for _, a := range todos {
		for _, b := range todos {
			u := usuarioCom(7, a, b)
			if PodeAprovarInternamente(n, u) {
				t.Errorf("criador com papéis [%s %s] não deveria aprovar a própria negociação", a, b)
			}
		}
	}
}

func TestPodeAprovarInternamente_elevadoIgnoraPropriedade(t *testing.T) {
	n := negociacaoBase()
	u := usuarioCom(7, papel.SuperAdmin)
	if !PodeAprovarInternamente(n, u) {
		t.Error("super_admin deveria aprovar inclusive a própria negociação")
	}
}

func TestPodeAprovarInternamente_gestorTerceiro(t *testing.T) {
	n := negociacaoBase()
	if !PodeAprovarInternamente(n, usuarioCom(9, papel.Diretor)) {
		t.Error("diretor que não criou deveria aprovar")
	}
	if !PodeAprovarInternamente(n, usuarioCom(9, papel.GerenteComercial)) {
		t.Error("gerente comercial que não criou deveria aprovar")
	}
	if PodeAprovarInternamente(n, usuarioCom(9, papel.Comercial)) {
		t.Error("comercial sem alçada não deveria aprovar")
	}
}

func TestPodeAprovarExternamente(t *testing.T) {
	n := negociacaoBase()

	representante := usuarioCom(20, papel.Profissional)
	representante.TipoNegociavel = models.TipoProfissional
	representante.NegociavelID = 42
	if !PodeAprovarExternamente(n, representante) {
		t.Error("representante da entidade alvo deveria aprovar externamente")
	}

	outraEntidade := usuarioCom(21, papel.Profissional)
	outraEntidade.TipoNegociavel = models.TipoProfissional
	outraEntidade.NegociavelID = 99
	if PodeAprovarExternamente(n, outraEntidade) {
		t.Error("representante de outra entidade não deveria aprovar")
	}

	papelErrado := usuarioCom(22, papel.AdminClinica)
	papelErrado.TipoNegociavel = models.TipoProfissional
	papelErrado.NegociavelID = 42
	if PodeAprovarExternamente(n, papelErrado) {
		t.Error("entidade certa com papel errado não deveria aprovar")
	}

	if !PodeAprovarExternamente(n, usuarioCom(23, papel.SuperAdmin)) {
		t.Error("super_admin ignora a correspondência de entidade")
	}
}

func TestPodeEditar(t *testing.T) {
	n := negociacaoBase()
	n.Status = models.StatusDraft
	if !PodeEditar(n, usuarioCom(7, papel.Comercial)) {
		t.Error("criador deveria editar o rascunho")
	}
	if PodeEditar(n, usuarioCom(9, papel.Comercial)) {
		t.Error("terceiro sem alçada não edita rascunho alheio")
	}

	n.Status = models.StatusPending
	if PodeEditar(n, usuarioCom(7, papel.Comercial)) {
		t.Error("criador não edita depois de submeter")
	}
	if !PodeEditar(n, usuarioCom(9, papel.GerenteComercial)) {
		t.Error("gestor deveria editar enquanto pendente")
	}
}

func TestPodeFazerProposta(t *testing.T) {
	n := negociacaoBase()
	n.Status = models.StatusSubmitted
	if PodeFazerProposta(n, usuarioCom(7)) {
		t.Error("criador não propõe sobre a própria submissão")
	}
	if !PodeFazerProposta(n, usuarioCom(9)) {
		t.Error("terceiro deveria propor em submitted")
	}

	n.Status = models.StatusRejected
	if !PodeFazerProposta(n, usuarioCom(7, papel.Comercial)) {
		t.Error("detentor de edição deveria propor após rejeição")
	}
	if PodeFazerProposta(n, usuarioCom(9, papel.Profissional)) {
		t.Error("sem permissão de edição não propõe após rejeição")
	}
}

func TestPodeFork_criadorSemPermissaoNaoBasta(t *testing.T) {
	n := negociacaoBase()
	n.Status = models.StatusDraft
	n.Itens = []models.ItemNegociacao{
		{Status: models.ItemPending},
		{Status: models.ItemPending},
	}

	// criador sem permissão de gestão: botão não aparece
	if PodeFork(n, usuarioCom(7, papel.Comercial)) {
		t.Error("criador sem permissão de gestão não deveria ver fork")
	}
	if !PodeFork(n, usuarioCom(9, papel.GerenteComercial)) {
		t.Error("gestor deveria poder fork")
	}
}

func TestPodeFork_estrutura(t *testing.T) {
	gestor := usuarioCom(9, papel.GerenteComercial)

	n := negociacaoBase()
	n.Status = models.StatusDraft
	n.Itens = []models.ItemNegociacao{{Status: models.ItemPending}}
	if PodeFork(n, gestor) {
		t.Error("fork exige pelo menos 2 itens pendentes")
	}

	n.Itens = append(n.Itens, models.ItemNegociacao{Status: models.ItemPending})
	n.EhFork = true
	if PodeFork(n, gestor) {
		t.Error("fork de fork não é permitido")
	}

	n.EhFork = false
	n.Status = models.StatusPending
	if PodeFork(n, gestor) {
		t.Error("fork só em rascunho")
	}
}

func TestPodeIniciarNovoCiclo_tetoDeCiclos(t *testing.T) {
	n := negociacaoBase()
	n.Status = models.StatusRejected
	n.CicloNegociacao = 3
	n.MaxCiclosPermitidos = 3

	if PodeIniciarNovoCiclo(n, usuarioCom(7, papel.GerenteComercial)) {
		t.Error("teto de ciclos atingido: botão deve sumir")
	}

	n.CicloNegociacao = 2
	if !PodeIniciarNovoCiclo(n, usuarioCom(7, papel.GerenteComercial)) {
		t.Error("abaixo do teto, novo ciclo deveria ser ofertado")
	}
}

func TestAvaliar_blocoCompleto(t *testing.T) {
	n := negociacaoBase()
	n.Status = models.StatusDraft
	n.Itens = []models.ItemNegociacao{
		{Status: models.ItemPending},
		{Status: models.ItemPending},
	}
	p := Avaliar(n, usuarioCom(9, papel.SuperAdmin))
	if !p.Fork || !p.Cancelar || !p.AprovarInternamente {
		t.Errorf("super_admin em rascunho: %+v", p)
	}
	if p.NovoCiclo {
		t.Error("novo ciclo não se aplica a rascunho")
	}
}
