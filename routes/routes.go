package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/suzanemu/pubg-point-bot/handlers"
	"github.com/suzanemu/pubg-point-bot/middleware"
	"github.com/suzanemu/pubg-point-bot/models"
)

// SetupRoutes собирает все маршруты приложения.
//
// Публичные: вход, таблица, websocket-подписка.
// Игрок: загрузка скриншотов своей команды.
// Админ: турниры, команды, ручной ввод результатов.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	resultHandler *handlers.ResultHandler,
	standingsHandler *handlers.StandingsHandler,
	wsHandler *handlers.WSHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	playerOnly := middleware.RequireRole(models.RolePlayer, models.RoleAdmin)

	// Авторизация
	router.Post("/auth/signin", authHandler.SignIn)
	router.Post("/auth/join", authHandler.JoinTeam)

	router.Route("/tournaments", func(r chi.Router) {
		// Публичный просмотр
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)
		r.Get("/{tournamentID}/standings", standingsHandler.Get)
		r.Get("/{tournamentID}/live", wsHandler.Subscribe)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/{tournamentID}/teams", teamHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Post("/", tournamentHandler.Create)
				r.Delete("/{tournamentID}", tournamentHandler.Delete)
				r.Post("/{tournamentID}/teams", teamHandler.Create)
			})
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/{teamID}", teamHandler.Get)
		r.Get("/{teamID}/results", resultHandler.ListTeamResults)

		r.Group(func(r chi.Router) {
			r.Use(playerOnly)
			r.Post("/me/screenshots", resultHandler.SubmitScreenshots)
		})

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Delete("/{teamID}", teamHandler.Delete)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)

		r.Post("/results/manual", resultHandler.SubmitManual)
		r.Post("/auth/register-admin", authHandler.RegisterAdmin)
	})
}
