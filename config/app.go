package config

type App struct {
	Port              string `env:"APP_PORT" default:"8080"`
	DatabaseURL       string `env:"DATABASE_URL,required"`
	MaxBooksPerMember int    `env:"MAX_BOOKS_PER_MEMBER" default:"10"`
	Env               string `env:"APP_ENV" default:"dev"`
}
