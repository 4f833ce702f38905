package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ninamwrites/bookstore-backend/api/controllers"
	admincontrollers "github.com/ninamwrites/bookstore-backend/api/controllers/admin"
	"github.com/ninamwrites/bookstore-backend/api/middleware"
	authsvc "github.com/ninamwrites/bookstore-backend/internal/auth"
	cartsvc "github.com/ninamwrites/bookstore-backend/internal/cart"
	"github.com/ninamwrites/bookstore-backend/internal/catalog"
	dashboardsvc "github.com/ninamwrites/bookstore-backend/internal/dashboard"
	newslettersvc "github.com/ninamwrites/bookstore-backend/internal/newsletter"
	ordersvc "github.com/ninamwrites/bookstore-backend/internal/orders"
	testimonialsvc "github.com/ninamwrites/bookstore-backend/internal/testimonials"
	"github.com/ninamwrites/bookstore-backend/pkg/auth/session"
	"github.com/ninamwrites/bookstore-backend/pkg/config"
	"github.com/ninamwrites/bookstore-backend/pkg/db"
	"github.com/ninamwrites/bookstore-backend/pkg/enums"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
	"github.com/ninamwrites/bookstore-backend/pkg/mailer"
	"github.com/ninamwrites/bookstore-backend/pkg/metrics"
	"github.com/ninamwrites/bookstore-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. The router stays a pure
// wiring layer: no business rules live here.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics

	Sessions     session.AccessSessionChecker
	Mailer       mailer.Mailer
	Auth         authsvc.Service
	Catalog      catalog.Service
	Cart         cartsvc.Service
	Orders       ordersvc.Service
	Newsletter   newslettersvc.Service
	Testimonials testimonialsvc.Service
	Dashboard    dashboardsvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	var cache redis.Pinger
	if d.Redis != nil {
		cache = d.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, cache))
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	noLimit := func(next http.Handler) http.Handler { return next }
	mailLimit, publicLimit := noLimit, noLimit
	if d.Redis != nil {
		mailLimit = middleware.RateLimit("mail_forms", cfg.RateLimit.MailFormsLimit, cfg.RateLimit.Window, d.Redis, logg)
		publicLimit = middleware.RateLimit("public", cfg.RateLimit.PublicIPLimit, cfg.RateLimit.Window, d.Redis, logg)
	}
	visitor := middleware.VisitorSession(cfg.Cart, cfg.App.IsProd(), logg)
	authed := middleware.Auth(cfg.JWT, d.Sessions, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(publicLimit, visitor)

		r.Route("/auth", func(r chi.Router) {
			r.With(mailLimit).Post("/register", controllers.AuthRegister(d.Auth, logg))
			r.With(mailLimit).Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(d.Auth, cfg.JWT, logg))
			r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
			r.With(authed).Get("/me", controllers.Me(logg))
		})

		r.Route("/books", func(r chi.Router) {
			r.Get("/", controllers.BookList(d.Catalog, logg))
			r.Get("/{bookId}", controllers.BookDetail(d.Catalog, logg))
		})
		r.Get("/merch", controllers.MerchList(d.Catalog, logg))
		r.Get("/testimonials", controllers.TestimonialList(d.Testimonials, logg))

		r.With(mailLimit).Post("/newsletter/subscribe", controllers.NewsletterSubscribe(d.Newsletter, logg))
		r.With(mailLimit).Post("/contact", controllers.ContactSubmit(d.Mailer, cfg.SMTP, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartView(d.Cart, logg))
			r.Post("/add", controllers.CartAdd(d.Cart, logg))
			r.Post("/update", controllers.CartUpdate(d.Cart, logg))
			r.Post("/remove", controllers.CartRemove(d.Cart, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/checkout", controllers.Checkout(d.Orders, logg))
			r.Get("/orders", controllers.MyOrders(d.Orders, logg))
			r.Post("/testimonials", controllers.TestimonialSubmit(d.Testimonials, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireRole(string(enums.CustomerRoleStaff), logg))

		r.Get("/dashboard", admincontrollers.Dashboard(d.Dashboard, logg))

		r.Route("/books", func(r chi.Router) {
			r.Get("/", admincontrollers.BookList(d.Catalog, logg))
			r.Post("/", admincontrollers.BookCreate(d.Catalog, logg))
			r.Put("/{bookId}", admincontrollers.BookUpdate(d.Catalog, logg))
			r.Delete("/{bookId}", admincontrollers.BookDelete(d.Catalog, logg))
		})

		r.Route("/merch", func(r chi.Router) {
			r.Get("/", admincontrollers.MerchList(d.Catalog, logg))
			r.Post("/", admincontrollers.MerchCreate(d.Catalog, logg))
			r.Put("/{merchId}", admincontrollers.MerchUpdate(d.Catalog, logg))
			r.Delete("/{merchId}", admincontrollers.MerchDelete(d.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", admincontrollers.OrderList(d.Orders, logg))
			r.Get("/{orderId}", admincontrollers.OrderDetail(d.Orders, logg))
			r.Post("/{orderId}/status", admincontrollers.OrderUpdateStatus(d.Orders, logg))
		})

		r.Route("/testimonials", func(r chi.Router) {
			r.Get("/", admincontrollers.TestimonialList(d.Testimonials, logg))
			r.Post("/{testimonialId}/moderate", admincontrollers.TestimonialModerate(d.Testimonials, logg))
			r.Delete("/{testimonialId}", admincontrollers.TestimonialDelete(d.Testimonials, logg))
		})

		r.Route("/newsletter", func(r chi.Router) {
			r.Get("/subscribers", admincontrollers.SubscriberList(d.Newsletter, logg))
			r.Post("/send", admincontrollers.NewsletterSend(d.Newsletter, logg))
		})
	})

	return r
}
