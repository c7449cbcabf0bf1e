package http

import (
	"net/http"
	"time"

	_ "github.com/ColdBlood237/odin-inventory/docs" // Импорт сгенерированных файлов
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(categoryUC usecase.CategoryUC, itemUC usecase.ItemUC, maxImageSize int64) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(r.requestLogger)
	r.router.Use(middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route(apiPrefix, func(v1 chi.Router) {
		registerCategoryRoutes(v1, NewCategoryHandler(categoryUC, maxImageSize, r.logger))
		registerItemRoutes(v1, NewItemHandler(itemUC, maxImageSize, r.logger))
	})
}

func registerCategoryRoutes(router chi.Router, h *CategoryHandler) {
	router.Route("/categories", func(c chi.Router) {
		c.Get("/", h.listCategories)
		c.Post("/", h.createCategory)
		c.Route("/{id}", func(c chi.Router) {
			c.Get("/", h.getCategory)
			c.Put("/", h.updateCategory)
			c.Delete("/", h.deleteCategory)
			c.Get("/image", h.getCategoryImage)
		})
	})
}

func registerItemRoutes(router chi.Router, h *ItemHandler) {
	router.Route("/items", func(i chi.Router) {
		i.Get("/", h.listItems)
		i.Post("/", h.createItem)
		i.Get("/form", h.newItemForm)
		i.Route("/{id}", func(i chi.Router) {
			i.Get("/", h.getItem)
			i.Put("/", h.updateItem)
			i.Delete("/", h.deleteItem)
			i.Get("/form", h.editItemForm)
			i.Get("/image", h.getItemImage)
		})
	})
}

// requestLogger пишет метод, путь, статус и длительность каждого запроса.
func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		r.logger.Infof("%s %s %d %s request_id=%s",
			req.Method, req.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
