// internal/erros/mensagens.go
package erros

// Mensagens canônicas de violação de regra, em inglês — são a chave da
// tabela de tradução e o conteúdo bruto de "errors" na resposta.
const (
	MsgSemItens                = "Cannot submit a negotiation without items"
	MsgNegociacaoNaoEncontrada = "Negotiation not found"
	MsgItemNaoEncontrado       = "Negotiation item not found"
	MsgApenasCriadorEnvia      = "Only the creator can submit this negotiation"
	MsgNaoEstaEmRascunho       = "Negotiation is not in draft status"
	MsgNaoEstaPendente         = "Negotiation is not pending approval"
	MsgNaoFoiEnviada           = "Negotiation has not been submitted to the counterparty"
	MsgAprovarPropria          = "You cannot approve your own negotiation"
	MsgSemPermissaoAprovar     = "You do not have permission to approve negotiations"
	MsgSemPermissaoGerenciar   = "You do not have permission to manage negotiations"
	MsgSemPermissaoEditar      = "You do not have permission to edit this negotiation"
	MsgNaoRepresentaEntidade   = "You do not represent this entity"
	MsgMaximoDeCiclos          = "Maximum number of negotiation cycles reached"
	MsgCicloStatusInvalido     = "Negotiation cannot start a new cycle in its current status"
	MsgCancelarStatusInvalido  = "Negotiation cannot be cancelled in its current status"
	MsgForkMinimoItens         = "A fork requires at least two pending items"
	MsgForkDeFork              = "A forked negotiation cannot be forked again"
	MsgForkForaDeRascunho      = "Only draft negotiations can be forked"
	MsgForkGrupoVazio          = "Fork groups cannot be empty"
	MsgForkItemInvalido        = "Fork groups may only reference pending items of this negotiation"
	MsgItemNaoPendente         = "Item is not pending"
	MsgItemNaoRespondivel      = "Item cannot be answered in its current status"
	MsgContraForaDeSubmitted   = "Items can only be countered while the negotiation is submitted"
	MsgItensNaoResolvidos      = "There are still unresolved items"
	MsgNemTodosAprovados       = "Not every item has been approved"
	MsgTodosAprovados          = "Every item was approved; the negotiation is complete"
	MsgContratoStatusInvalido  = "Contract can only be generated for approved negotiations"
	MsgContratoJaGerado        = "Contract already generated for this cycle"
	MsgReverterStatusInvalido  = "Rollback is only allowed from pending or approved"
	MsgSemStatusAnterior       = "There is no previous status to roll back to"
	MsgTransicaoInvalida       = "Invalid status transition"
	MsgDecisaoInvalida         = "Invalid approval decision"
	MsgContrapropostaInvalida  = "Counter offer value must be greater than zero"
	MsgPayloadInvalido         = "Invalid payload"
	MsgUsuarioNaoEncontrado    = "User not found"
	MsgCredenciaisInvalidas    = "Invalid credentials"
)
