// internal/erros/traducao.go
package erros

// traducoes mapeia as mensagens de regra do servidor para o texto exibido
// em português. Mensagem desconhecida passa adiante sem tradução.
var traducoes = map[string]string{
	MsgSemItens:                "Não é possível enviar uma negociação sem itens",
	MsgNegociacaoNaoEncontrada: "Negociação não encontrada",
	MsgItemNaoEncontrado:       "Item de negociação não encontrado",
	MsgApenasCriadorEnvia:      "Apenas o criador pode enviar esta negociação",
	MsgNaoEstaEmRascunho:       "A negociação não está em rascunho",
	MsgNaoEstaPendente:         "A negociação não está pendente de aprovação",
	MsgNaoFoiEnviada:           "A negociação não foi enviada à contraparte",
	MsgAprovarPropria:          "Você não pode aprovar sua própria negociação",
	MsgSemPermissaoAprovar:     "Você não tem permissão para aprovar negociações",
	MsgSemPermissaoGerenciar:   "Você não tem permissão para gerenciar negociações",
	MsgSemPermissaoEditar:      "Você não tem permissão para editar esta negociação",
	MsgNaoRepresentaEntidade:   "Você não representa esta entidade",
	MsgMaximoDeCiclos:          "Número máximo de ciclos de negociação atingido",
	MsgCicloStatusInvalido:     "A negociação não pode iniciar um novo ciclo no status atual",
	MsgCancelarStatusInvalido:  "A negociação não pode ser cancelada no status atual",
	MsgForkMinimoItens:         "Um fork exige pelo menos dois itens pendentes",
	MsgForkDeFork:              "Uma negociação originada de fork não pode ser dividida novamente",
	MsgForkForaDeRascunho:      "Apenas negociações em rascunho podem ser divididas",
	MsgForkGrupoVazio:          "Os grupos do fork não podem estar vazios",
	MsgForkItemInvalido:        "Os grupos do fork só podem referenciar itens pendentes desta negociação",
	MsgItemNaoPendente:         "O item não está pendente",
	MsgItemNaoRespondivel:      "O item não pode ser respondido no status atual",
	MsgContraForaDeSubmitted:   "Itens só recebem contraproposta enquanto a negociação estiver enviada",
	MsgItensNaoResolvidos:      "Ainda existem itens não resolvidos",
	MsgNemTodosAprovados:       "Nem todos os itens foram aprovados",
	MsgTodosAprovados:          "Todos os itens foram aprovados; conclua a negociação",
	MsgContratoStatusInvalido:  "O contrato só pode ser gerado para negociações aprovadas",
	MsgContratoJaGerado:        "Contrato já gerado para este ciclo",
	MsgReverterStatusInvalido:  "A reversão só é permitida a partir de pendente ou aprovada",
	MsgSemStatusAnterior:       "Não há status anterior para reverter",
	MsgTransicaoInvalida:       "Transição de status inválida",
	MsgDecisaoInvalida:         "Decisão de aprovação inválida",
	MsgContrapropostaInvalida:  "O valor da contraproposta deve ser maior que zero",
	MsgPayloadInvalido:         "Requisição inválida",
	MsgUsuarioNaoEncontrado:    "Usuário não encontrado",
	MsgCredenciaisInvalidas:    "Credenciais inválidas",
}

// Traduzir devolve o texto em português da mensagem, ou a própria mensagem
// quando não há entrada na tabela.
func Traduzir(mensagem string) string {
	if pt, ok := traducoes[mensagem]; ok {
		return pt
	}
	return mensagem
}
