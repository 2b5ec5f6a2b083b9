package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs.  Database settings are optional: when the user store cannot be
// reached the service keeps running and only the fallback administrator can
// authenticate.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	TokenTTLHours  int    // identity token time-to-live in hours
	BcryptCost     int    // bcrypt cost for password hashing
	AdminUsername  string // fallback administrator login name
	AdminPassword  string // fallback administrator password (hashed at startup)
	AdminEmail     string // contact email reported for the fallback administrator
	CookieName     string // name of the cookie carrying the identity token
	RememberMeDays int    // cookie lifetime in days when "remember me" is requested
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Everything else has
// a sensible default so a bare container can still boot.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		JWTSecret:      must("JWT_SECRET"),
		DBUser:         getenv("DB_USER", "logstream"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         getenv("DB_HOST", "localhost"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBName:         getenv("DB_NAME", "monitoring"),
		TokenTTLHours:  envInt("JWT_EXPIRATION_HOURS", 24),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		AdminUsername:  getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getenv("ADMIN_PASSWORD", "admin123"),
		AdminEmail:     getenv("ADMIN_EMAIL", "admin@logstream.local"),
		CookieName:     getenv("AUTH_COOKIE_NAME", "access_token"),
		RememberMeDays: envInt("REMEMBER_ME_DAYS", 30),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of an environment variable or a default when the
// variable is unset or empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an integer environment variable, falling back to the default
// when the variable is unset or not a valid integer.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}
