package erros

import "testing"

func TestTraduzir_mensagemConhecida(t *testing.T) {
	got := Traduzir(MsgSemItens)
	want := "Não é possível enviar uma negociação sem itens"
	if got != want {
		t.Errorf("Traduzir(MsgSemItens) = %q, want %q", got, want)
	}
}

func TestTraduzir_fallbackIdentidade(t *testing.T) {
	msg := "Some brand new server message"
	if got := Traduzir(msg); got != msg {
		t.Errorf("Traduzir(desconhecida) = %q, want a própria mensagem", got)
	}
}

func TestTraduzir_tabelaCompleta(t *testing.T) {
	// toda mensagem canônica precisa de tradução própria
	for en, pt := range traducoes {
		if pt == "" || pt == en {
			t.Errorf("mensagem %q sem tradução", en)
		}
	}
}
