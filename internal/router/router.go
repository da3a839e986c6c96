package router

import (
	"time"

	"restopos/internal/config"
	"restopos/internal/handler"
	"restopos/internal/middleware"
	"restopos/internal/repository"
	"restopos/internal/service"
	"restopos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	fichaRepo := repository.NewFichaTecnicaRepository(db)
	mesaRepo := repository.NewMesaRepository(db)
	comandaRepo := repository.NewComandaRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	estoqueRepo := repository.NewEstoqueRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	insumoSvc := service.NewInsumoService(insumoRepo)
	produtoSvc := service.NewProdutoService(produtoRepo, rdb)
	fichaSvc := service.NewFichaTecnicaService(fichaRepo, insumoRepo)
	mesaSvc := service.NewMesaService(mesaRepo)
	comandaSvc := service.NewComandaService(comandaRepo, mesaRepo, vendaRepo)
	vendaSvc := service.NewVendaService(vendaRepo)
	estoqueSvc := service.NewEstoqueService(estoqueRepo, produtoRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	insumosH := handler.NewInsumosHandler(insumoSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	fichaH := handler.NewFichaTecnicaHandler(fichaSvc)
	mesasH := handler.NewMesasHandler(mesaSvc)
	comandasH := handler.NewComandasHandler(comandaSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	estoqueH := handler.NewEstoqueHandler(estoqueSvc, rdb)
	consultaH := handler.NewConsultaPrecosHandler(produtoRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/preco/:codigo", consultaH.GetPrecoPorCodigo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole("operador", "admin")
	adminOnly := middleware.RequireRole("admin")
	v1 := r.Group("/v1", jwtMW)
	{
		insumos := v1.Group("/insumos", staff)
		{
			insumos.POST("", insumosH.Criar)
			insumos.GET("", insumosH.Listar)
			insumos.GET("/proximo-codigo", insumosH.ProximoCodigo)
			insumos.GET("/codigo/:codigo", insumosH.ObterPorCodigo)
			insumos.GET("/:id", insumosH.ObterPorID)
			insumos.PUT("/:id", insumosH.Atualizar)
			insumos.GET("/:id/estoque", insumosH.ObterEstoque)
			insumos.PUT("/:id/estoque", insumosH.AtualizarEstoque)
		}

		produtos := v1.Group("/produtos", staff)
		{
			produtos.POST("", produtosH.Criar)
			produtos.GET("", produtosH.Listar)
			produtos.GET("/proximo-codigo", produtosH.ProximoCodigo)
			produtos.GET("/codigo/:codigo", produtosH.ObterPorCodigo)
			produtos.GET("/:id", produtosH.ObterPorID)
			produtos.PUT("/:id", produtosH.Atualizar)
		}

		ficha := v1.Group("/ficha-tecnica", staff)
		{
			ficha.POST("", fichaH.Criar)
			ficha.GET("/produto/:produto_id", fichaH.ListarPorProduto)
			ficha.GET("/produto/:produto_id/custo", fichaH.Custo)
			ficha.DELETE("/:id", fichaH.Deletar)
		}

		mesas := v1.Group("/mesas", staff)
		{
			mesas.POST("", mesasH.Criar)
			mesas.GET("", mesasH.Listar)
			mesas.GET("/:id", mesasH.ObterPorID)
			mesas.PATCH("/:id/status", mesasH.AtualizarStatus)
		}

		comandas := v1.Group("/comandas", staff)
		{
			comandas.POST("", comandasH.Criar)
			comandas.GET("", comandasH.ListarAbertas)
			comandas.GET("/:id", comandasH.ObterPorID)
			comandas.POST("/:id/itens", comandasH.AdicionarItem)
			comandas.GET("/:id/itens", comandasH.ListarItens)
			comandas.POST("/:id/fechar", comandasH.Fechar)
		}

		vendas := v1.Group("/vendas", staff)
		{
			vendas.GET("", vendasH.Listar)
			vendas.GET("/relatorio", vendasH.Relatorio)
		}

		estoque := v1.Group("/estoque", staff)
		{
			estoque.GET("", estoqueH.Listar)
			estoque.GET("/alertas", estoqueH.Alertas)
			estoque.PUT("", estoqueH.Atualizar)
			estoque.POST("/movimentacoes", estoqueH.RegistrarMovimentacao)
			estoque.GET("/produto/:produto_id", estoqueH.ObterPorProduto)
			estoque.GET("/produto/:produto_id/movimentacoes", estoqueH.ListarMovimentacoes)
		}

		usuarios := v1.Group("/usuarios", adminOnly)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Desativar)
		}
	}

	return r
}
