package encio

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Warnings is where warnings are sent to.
// In many cases typedbytes will continue to operate with e.g. incorrectly implemented io.Writers or shadowed definitions,
// however I don't want to silently put up with things that seem worrying.
// Replace it to change the destination or level; zerolog.Nop() silences it.
var Warnings = zerolog.New(zerolog.ConsoleWriter{
	Out:        os.Stderr,
	TimeFormat: time.RFC3339,
}).Level(zerolog.WarnLevel).With().Timestamp().Str("lib", "typedbytes").Logger()
