package router

import (
	"context"

	"github.com/HanielHB/multienda-multicaja-sub000/internal/config"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/handler"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/infra"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/middleware"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/model"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/repository"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/service"
	"github.com/HanielHB/multienda-multicaja-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const adminRequestsPerMinute = 600

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository/APIClient ← Redis/backend.
// rdb may be nil when SESSION_BACKEND=memory; report e-mail is then disabled.
// ctx bounds the background goroutines of the rate limiters.
func New(ctx context.Context, cfg *config.Config, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// ClientIP feeds the per-IP rate limiters; forwarded headers only count
	// when they come from a configured proxy.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigin))
	r.Use(middleware.ErrorHandler())

	// ── Infrastructure ───────────────────────────────────────────────────────
	api := infra.NewAPIClient(cfg.APIBaseURL, cfg.APITimeout())
	mailer := infra.NewMailer(cfg)

	// ── Repositories ─────────────────────────────────────────────────────────
	var (
		store    repository.SessionStore
		carritos repository.CarritoRepository
	)
	if rdb != nil && cfg.SessionBackend != "memory" {
		store = repository.NewRedisSessionStore(rdb)
		carritos = repository.NewRedisCarritoRepository(rdb, cfg.SessionTTL())
	} else {
		store = repository.NewMemorySessionStore()
		carritos = repository.NewMemoryCarritoRepository()
	}

	// Worker dispatcher: only when a queue and an SMTP host exist
	var dispatcher service.ReportDispatcher
	if rdb != nil && mailer.Enabled() {
		dispatcher = worker.NewDispatcher(rdb)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(api, store, carritos, cfg.SessionTTL())
	productoSvc := service.NewProductoService(api, cfg.PageSize)
	posSvc := service.NewPOSService(api, carritos)
	cajaSvc := service.NewCajaService(api, store)
	reporteSvc := service.NewReporteService(api, dispatcher, cfg.ExportStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	sessions := middleware.NewSessions(store, middleware.CookieConfig{
		Name:   cfg.SessionCookieName,
		Secure: cfg.CookieSecure,
		MaxAge: cfg.SessionTTL(),
	})
	authH := handler.NewAuthHandler(authSvc, sessions)
	productosH := handler.NewProductosHandler(productoSvc, "/admin/productos")
	posH := handler.NewPOSHandler(posSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(rdb, api.Breaker()))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("", sessions.Load())
	{
		public.GET(model.PathLogin, authH.LoginPage)
		public.GET(model.PathLoginAlias, authH.LoginPage)
		public.POST(model.PathLoginAlias, middleware.LoginRateLimiter(ctx, cfg.LoginRatePerMinute), authH.Login)
	}

	// Admin shell: every route is guarded by its entry in model.Rutas
	admin := r.Group(model.PathAdmin, middleware.RateLimiter(ctx, adminRequestsPerMinute), sessions.RequireRoute())
	{
		admin.GET("", handler.Layout)
		admin.GET("/logout", authH.LogoutPrompt)
		admin.POST("/logout", authH.Logout)
		admin.GET("/dashboard", reportesH.Dashboard)

		productosH.Register(admin.Group("/productos"))
		registerRecurso[model.Categoria](admin, api, cfg, "categorias", "/categorias")
		registerRecurso[model.Proveedor](admin, api, cfg, "proveedores", "/proveedores")
		registerRecurso[model.Cliente](admin, api, cfg, "clientes", "/clientes")
		registerRecurso[model.Sucursal](admin, api, cfg, "sucursales", "/sucursales")
		registerRecurso[model.Almacen](admin, api, cfg, "almacenes", "/almacenes")
		registerRecurso[model.Usuario](admin, api, cfg, "usuarios", "/usuarios")
		registerRecurso[model.MetodoPago](admin, api, cfg, "metodos-pago", "/metodos-pago")
		registerRecurso[model.Inventario](admin, api, cfg, "inventario", "/inventarios")

		cajas := admin.Group("/apertura-cajas")
		{
			cajas.GET("", cajaH.Listar)
			cajas.POST("/:id/abrir", cajaH.Abrir)
			cajas.POST("/cerrar", cajaH.Cerrar)
		}

		pos := admin.Group("/punto-venta")
		{
			pos.GET("", posH.Carrito)
			pos.POST("/carrito", posH.Agregar)
			pos.DELETE("/carrito", posH.Vaciar)
			pos.POST("/carrito/:id/incrementar", posH.Incrementar)
			pos.POST("/carrito/:id/decrementar", posH.Decrementar)
			pos.DELETE("/carrito/:id", posH.Quitar)
			pos.POST("/cotizacion", posH.Cotizar)
			pos.POST("/cobro", posH.Cobrar)
			pos.POST("/movimientos", posH.Movimiento)
		}

		rep := admin.Group("/reportes")
		{
			rep.GET("", reportesH.Tipos)
			rep.GET("/:tipo", reportesH.Reporte)
			rep.GET("/:tipo/csv", reportesH.CSV)
			rep.GET("/:tipo/pdf", reportesH.PDF)
			rep.POST("/:tipo/envios", reportesH.Enviar)
		}
	}

	// Swagger UI, outside production only
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// registerRecurso mounts the generic CRUD of T at /admin/<slug>, backed by
// the backend collection at endpoint.
func registerRecurso[T service.Buscable](admin *gin.RouterGroup, api *infra.APIClient, cfg *config.Config, slug, endpoint string) {
	svc := service.NewRecursoService[T](api, endpoint, cfg.PageSize)
	handler.NewRecursoHandler[T](svc, model.PathAdmin+"/"+slug).Register(admin.Group("/" + slug))
}
