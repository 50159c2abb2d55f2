package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New crea el logger estructurado de la aplicación. En development la salida
// es consola legible; en cualquier otro entorno, JSON por línea.
// level acepta trace|debug|info|warn|error (default info).
func New(env, level string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(w).Level(lvl).With().Timestamp().Logger()

	// Redirigir el logger global de zerolog para librerías que lo usen
	log.Logger = zl
	return zl
}

// ForComponent devuelve un sublogger con el campo component fijo, para que
// cada adaptador (postgres, typesense, ai) etiquete sus líneas.
func ForComponent(zl zerolog.Logger, name string) zerolog.Logger {
	return zl.With().Str("component", name).Logger()
}
