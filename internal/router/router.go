package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mem "petcare-api/internal/adapters/storage/memory"
	pg "petcare-api/internal/adapters/storage/postgres"
	"petcare-api/internal/auth"
	"petcare-api/internal/domain/pets"
	"petcare-api/internal/domain/schedules"
	"petcare-api/internal/domain/users"
	"petcare-api/internal/domain/visits"
	"petcare-api/internal/middleware"
	"petcare-api/internal/platform/logger"
	"petcare-api/internal/uploads"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Tokens *auth.TokenManager
	Photos *uploads.Store
	Log    logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.Tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		userRepo     users.Repository
		petRepo      pets.Repository
		scheduleRepo schedules.Repository
		visitRepo    visits.Repository
	)

	if opts.DB != nil {
		userRepo = pg.NewUserRepo(opts.DB)
		petRepo = pg.NewPetRepo(opts.DB)
		scheduleRepo = pg.NewScheduleRepo(opts.DB)
		visitRepo = pg.NewVisitRepo(opts.DB)
	} else {
		memSchedules := mem.NewScheduleRepo()
		memVisits := mem.NewVisitRepo()
		userRepo = mem.NewUserRepo()
		petRepo = mem.NewPetRepo(memSchedules, memVisits)
		scheduleRepo = memSchedules
		visitRepo = memVisits
	}

	// Services por módulo
	usersSvc := users.NewService(userRepo, opts.Tokens)
	petsSvc := pets.NewService(petRepo)
	schedulesSvc := schedules.NewService(scheduleRepo, petsSvc)
	visitsSvc := visits.NewService(visitRepo, petsSvc)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc)
	pets.RegisterRoutes(r, petsSvc, opts.Photos)
	schedules.RegisterRoutes(r, schedulesSvc, petsSvc)
	visits.RegisterRoutes(r, visitsSvc, petsSvc)

	// Las fotos promovidas se sirven directo del directorio del store.
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.Photos.Dir())))
	r.Get("/uploads/*", fs.ServeHTTP)

	return r
}
