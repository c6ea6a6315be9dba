package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// envFile is an optional dotenv file. Variables already present in the
// process environment take precedence over it.
var envFile = ".env"

// parseEnv overlays values from the process environment and envFile. PORT
// only carries the port number and is turned into ":<port>". DATABASE_URL
// wins over MONGODB_URL when both are set. A malformed envFile panics, like
// a broken JSON config.
func parseEnv(config *Config) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if port, ok := lookup(v, "PORT"); ok {
		config.EndpointAddrHTTP = ":" + strings.TrimPrefix(port, ":")
	}
	if dsn, ok := lookup(v, "MONGODB_URL"); ok {
		config.DatabaseDSN = dsn
	}
	if dsn, ok := lookup(v, "DATABASE_URL"); ok {
		config.DatabaseDSN = dsn
	}
	if secret, ok := lookup(v, "JWT_SECRET"); ok {
		config.SecretKey = secret
	}
	if s, ok := lookup(v, "CORS_ORIGIN"); ok {
		config.CORSOrigin = s
	}
	if s, ok := lookup(v, "LOG_BACKEND"); ok {
		config.LogBackend = s
	}
	if s, ok := lookup(v, "S3_ACCESS_KEY"); ok {
		config.S3RootUser = s
	}
	if s, ok := lookup(v, "S3_SECRET_KEY"); ok {
		config.S3RootPassword = s
	}
	if s, ok := lookup(v, "S3_BUCKET"); ok {
		config.S3Bucket = s
	}
	if s, ok := lookup(v, "S3_REGION"); ok {
		config.S3Region = s
	}
	if s, ok := lookup(v, "S3_ENDPOINT"); ok {
		config.S3BaseEndpoint = s
	}
	if _, ok := lookup(v, "SEED"); ok {
		config.Seed = v.GetBool("SEED")
	}
}

// lookup treats blank values as unset.
func lookup(v *viper.Viper, key string) (string, bool) {
	s := strings.TrimSpace(v.GetString(key))
	return s, s != ""
}
