package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pets-api/internal/adapters/storage/memory"
	pg "pets-api/internal/adapters/storage/postgres"
	"pets-api/internal/domain/events"
	"pets-api/internal/domain/pets"
	"pets-api/internal/domain/posts"
	"pets-api/internal/domain/vaccinations"
	"pets-api/internal/middleware"

	_ "pets-api/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger zerolog.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler())

	var (
		petRepo         pets.Repository
		eventRepo       events.Repository
		vaccinationRepo vaccinations.Repository
		postRepo        posts.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				opts.Logger.Warn().Err(err).Msg("DB_DSN set but unreachable, falling back to memory")
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		eventRepo = pg.NewEventsRepo(db)
		vaccinationRepo = pg.NewVaccinationsRepo(db)
		postRepo = pg.NewPostsRepo(db)
	} else {
		store := mem.NewStore()
		petRepo = store.Pets()
		eventRepo = store.Events()
		vaccinationRepo = store.Vaccinations()
		postRepo = store.Posts()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	eventsSvc := events.NewService(eventRepo, petsSvc)
	vaccinationsSvc := vaccinations.NewService(vaccinationRepo, petsSvc)
	postsSvc := posts.NewService(postRepo, petsSvc)

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		pets.RegisterRoutes(api, petsSvc)
		events.RegisterRoutes(api, eventsSvc)
		vaccinations.RegisterRoutes(api, vaccinationsSvc)
		posts.RegisterRoutes(api, postsSvc)
	})

	return r
}
