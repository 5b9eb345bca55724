package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/ConectaSaude/api-rede/internal/auth"
	"github.com/ConectaSaude/api-rede/internal/contrato"
	"github.com/ConectaSaude/api-rede/internal/entidade"
	"github.com/ConectaSaude/api-rede/internal/models"
	"github.com/ConectaSaude/api-rede/internal/negociacao"
	"github.com/ConectaSaude/api-rede/internal/notificacao"
	"github.com/ConectaSaude/api-rede/internal/papel"
	"github.com/ConectaSaude/api-rede/internal/usuario"
	"github.com/ConectaSaude/api-rede/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	database, err := db.Conectar()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&papel.Permissao{},
		&papel.Papel{},
		&usuario.Usuario{},
		&entidade.Operadora{},
		&entidade.Profissional{},
		&entidade.Clinica{},
		&models.Negociacao{},
		&models.ItemNegociacao{},
		&models.HistoricoAprovacao{},
		&contrato.Contrato{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Papéis e permissões canônicos
	if err := papel.Seed(database); err != nil {
		log.Fatal("Erro ao semear papéis:", err)
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(database)
	entidadeHandler := entidade.NewHandler(database)
	negociacaoHandler := negociacao.NewHandler(database, notificacao.NovoWebhook())
	contratoHandler := contrato.NewHandler(database)

	// Router
	r := mux.NewRouter()

	// Rotas públicas: login e formulários de credenciamento
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/operadoras", entidadeHandler.CriarOperadora).Methods("POST")
	r.HandleFunc("/profissionais", entidadeHandler.CriarProfissional).Methods("POST")
	r.HandleFunc("/clinicas", entidadeHandler.CriarClinica).Methods("POST")

	// Rotas autenticadas
	s := r.NewRoute().Subrouter()
	s.Use(auth.MiddlewareAutenticacao)

	// Usuários
	s.Handle("/usuarios", auth.RequirePapel(papel.SuperAdmin,
		http.HandlerFunc(usuarioHandler.Criar))).Methods("POST")
	s.HandleFunc("/usuarios", usuarioHandler.Listar).Methods("GET")
	s.HandleFunc("/usuarios/{id}", usuarioHandler.BuscarPorID).Methods("GET")
	s.HandleFunc("/usuarios/{id}", usuarioHandler.Atualizar).Methods("PUT")
	s.HandleFunc("/usuarios/{id}", usuarioHandler.Deletar).Methods("DELETE")
	s.HandleFunc("/me", usuarioHandler.Me).Methods("GET")

	// Entidades credenciadas
	s.HandleFunc("/operadoras", entidadeHandler.ListarOperadoras).Methods("GET")
	s.HandleFunc("/operadoras/{id}", entidadeHandler.BuscarOperadora).Methods("GET")
	s.HandleFunc("/profissionais", entidadeHandler.ListarProfissionais).Methods("GET")
	s.HandleFunc("/profissionais/{id}", entidadeHandler.BuscarProfissional).Methods("GET")
	s.HandleFunc("/clinicas", entidadeHandler.ListarClinicas).Methods("GET")
	s.HandleFunc("/clinicas/{id}", entidadeHandler.BuscarClinica).Methods("GET")

	// Negociações
	s.HandleFunc("/negociacoes", negociacaoHandler.Criar).Methods("POST")
	s.HandleFunc("/negociacoes", negociacaoHandler.Listar).Methods("GET")
	s.HandleFunc("/negociacoes/{id}", negociacaoHandler.BuscarPorID).Methods("GET")
	s.HandleFunc("/negociacoes/{id}", negociacaoHandler.Atualizar).Methods("PUT")
	s.HandleFunc("/negociacoes/{id}/submeter", negociacaoHandler.Submeter).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/aprovar", negociacaoHandler.Aprovar).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/rejeitar", negociacaoHandler.Rejeitar).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/reverter", negociacaoHandler.Reverter).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/cancelar", negociacaoHandler.Cancelar).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/concluir", negociacaoHandler.Concluir).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/concluir-parcial", negociacaoHandler.ConcluirParcial).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/novo-ciclo", negociacaoHandler.NovoCiclo).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/fork", negociacaoHandler.Fork).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/gerar-contrato", negociacaoHandler.GerarContrato).Methods("POST")
	s.HandleFunc("/negociacoes/{id}/reenviar-notificacoes", negociacaoHandler.ReenviarNotificacoes).Methods("POST")

	// Itens de negociação
	s.HandleFunc("/itens-negociacao/{id}/responder", negociacaoHandler.ResponderItem).Methods("POST")
	s.HandleFunc("/itens-negociacao/{id}/contraproposta", negociacaoHandler.Contrapropor).Methods("POST")

	// Contratos
	s.HandleFunc("/negociacoes/{id}/contratos", contratoHandler.ListarPorNegociacao).Methods("GET")
	s.HandleFunc("/contratos/{id}", contratoHandler.BuscarPorID).Methods("GET")

	// Dashboard
	s.HandleFunc("/dashboard/resumo", negociacaoHandler.Resumo).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
