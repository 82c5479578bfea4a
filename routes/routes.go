package routes

import (
	"github.com/futdraft/futdraft-backend/handlers"
	"github.com/futdraft/futdraft-backend/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	matchHandler *handlers.MatchHandler,
	enrollmentHandler *handlers.EnrollmentHandler,
	playerHandler *handlers.PlayerHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/matches", func(r chi.Router) {
		// Публичные маршруты для просмотра матчей
		r.Get("/", matchHandler.List)
		r.Get("/{matchID}", matchHandler.GetByID)
		r.Get("/{matchID}/roster", enrollmentHandler.Roster)

		// Защищённые маршруты
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/", matchHandler.Create)
			r.Get("/owned", matchHandler.ListOwned)
			r.Get("/owned/upcoming", matchHandler.ListOwnedUpcoming)
			r.Patch("/{matchID}", matchHandler.Update)
			r.Delete("/{matchID}", matchHandler.Delete)

			r.Post("/{matchID}/draft", matchHandler.Draft)

			r.Post("/{matchID}/players/{playerID}/enroll", enrollmentHandler.Enroll)
			r.Delete("/{matchID}/players/{playerID}/enroll", enrollmentHandler.Unenroll)
			r.Post("/{matchID}/players/{playerID}/confirm", enrollmentHandler.ConfirmPresence)
			r.Delete("/{matchID}/players/{playerID}/confirm", enrollmentHandler.UndoConfirm)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Get("/{playerID}", playerHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Post("/", playerHandler.Create)
			r.Delete("/{playerID}", playerHandler.Delete)
			r.Put("/{playerID}/avatar", playerHandler.UploadAvatar)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Put("/{teamID}/goals", matchHandler.UpdateTeamGoals)
		})
	})

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.Handler())
}
