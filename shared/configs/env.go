package configs

import "os"

var Envs struct {
	ALLOWED_ORIGINS string
	POSTGRES_URL    string
	PORT            string
	GIN_MODE        string
}

// Load reads the process environment into Envs. Called from main after
// godotenv has had a chance to populate os.Environ from a .env file.
func Load() {
	Envs.ALLOWED_ORIGINS = os.Getenv("ALLOWED_ORIGINS")
	Envs.POSTGRES_URL = os.Getenv("POSTGRES_URL")
	Envs.PORT = os.Getenv("PORT")
	Envs.GIN_MODE = os.Getenv("GIN_MODE")
}
