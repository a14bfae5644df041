package main

import (
	"errors"
	"os"
	"strings"
)

// envSessionKey is the environment variable checked before browser
// fallback; a .env file in the workspace is honored via godotenv.
const envSessionKey = "AOC_SESSION"

// errNoSession indicates no credential could be found anywhere.
var errNoSession = errors.New("no session available: log in to adventofcode.com in Firefox, or run `aochelper set session_key <key>`")

// credentialSource looks up a session cookie from some local store.
// Implementations are per browser/OS and best-effort: an error means
// "nothing here", and resolution moves on to the next source.
type credentialSource interface {
	name() string
	lookup() (string, error)
}

// resolveSession produces the session credential for a fetch.
// Order: explicit config key, AOC_SESSION, then each browser source.
func resolveSession(cfg appConfig, log *logger, sources ...credentialSource) (string, error) {
	if cfg.SessionKey != "" {
		return cfg.SessionKey, nil
	}

	if key := strings.TrimSpace(os.Getenv(envSessionKey)); key != "" {
		log.infof("using session key from %s", envSessionKey)
		return key, nil
	}

	for _, src := range sources {
		key, err := src.lookup()
		if err != nil {
			log.warnf("%s: %s", src.name(), err.Error())
			continue
		}
		log.infof("using session cookie from %s", src.name())
		return key, nil
	}
	return "", errNoSession
}
