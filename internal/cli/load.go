package cli

import (
	"errors"

	"github.com/kennel-io/kennel/internal/manifest"
	"github.com/kennel-io/kennel/internal/memrepo"
)

// Error code for failures outside the manifest error taxonomy.
const errCodeGeneric = "E001"

// loadManifest loads a manifest directory and reports load failures in the
// configured format. Load failures are command-level errors (exit code 2):
// the input could not even be read, so no validation verdict applies.
func loadManifest(dir string, formatter *OutputFormatter) (*manifest.Manifest, error) {
	m, err := manifest.LoadDir(dir)
	if err != nil {
		var loadErr *manifest.LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return nil, NewExitError(ExitCommandError, loadErr.Error())
		}
		_ = formatter.Error(errCodeGeneric, err.Error(), nil)
		return nil, NewExitError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("Loaded %d class(es) and %d object(s) from %s",
		len(m.Classes), len(m.Objects), dir)
	return m, nil
}

// buildWorld loads a manifest directory and materializes it into a fresh
// registry. Build failures (invalid hierarchy, id collisions) are domain
// failures (exit code 1).
func buildWorld(dir string, formatter *OutputFormatter) (*manifest.World, error) {
	m, err := loadManifest(dir, formatter)
	if err != nil {
		return nil, err
	}

	world, err := manifest.Build(m, memrepo.New())
	if err != nil {
		var verr *manifest.ValidationError
		if errors.As(err, &verr) {
			_ = formatter.Error(verr.Code, verr.Message, verr.Field)
			return nil, NewExitError(ExitFailure, verr.Error())
		}
		_ = formatter.Error(errCodeGeneric, err.Error(), nil)
		return nil, NewExitError(ExitFailure, err.Error())
	}
	return world, nil
}
