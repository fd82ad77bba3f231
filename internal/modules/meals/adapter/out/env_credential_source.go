package out

import (
	"context"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
	"go.uber.org/zap"

	"mealsync/internal/modules/meals/domain"
	mealsout "mealsync/internal/modules/meals/port/out"
	"mealsync/internal/platform/dotenv"
	apperrors "mealsync/internal/platform/errors"
)

type credentialVars struct {
	Username string `env:"EASISTENT_USERNAME,required,notEmpty"`
	Password string `env:"EASISTENT_PASSWORD,required,notEmpty"`
}

// EnvCredentialSource reads credentials from an environment snapshot and
// falls back to a .env file for whichever variable is unset.
type EnvCredentialSource struct {
	environ map[string]string
	envFile string
	logger  *zap.Logger
}

func NewEnvCredentialSource(environ map[string]string, envFile string, logger *zap.Logger) mealsout.CredentialSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnvCredentialSource{environ: environ, envFile: envFile, logger: logger}
}

func (s *EnvCredentialSource) Resolve(_ context.Context) (domain.Credentials, error) {
	merged := map[string]string{}
	keys := []string{domain.EnvUsername, domain.EnvPassword}
	missing := false
	for _, key := range keys {
		if v := s.environ[key]; strings.TrimSpace(v) != "" {
			merged[key] = v
		} else {
			missing = true
		}
	}

	if missing && s.envFile != "" {
		values, found, err := dotenv.Load(s.envFile)
		if err != nil {
			return domain.Credentials{}, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
		}
		if found {
			s.logger.Info("loading credentials from env file", zap.String("path", s.envFile))
		}
		for _, key := range keys {
			if merged[key] == "" && strings.TrimSpace(values[key]) != "" {
				merged[key] = values[key]
			}
		}
	}

	vars := credentialVars{}
	if err := env.ParseWithOptions(&vars, env.Options{Environment: merged}); err != nil {
		return domain.Credentials{}, fmt.Errorf(
			"%w: credentials not found; set %s and %s environment variables or create a .env file with these variables",
			apperrors.ErrConfiguration, domain.EnvUsername, domain.EnvPassword,
		)
	}
	creds := domain.Credentials{Username: vars.Username, Password: vars.Password}
	if err := creds.Validate(); err != nil {
		return domain.Credentials{}, fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err)
	}
	return creds, nil
}
