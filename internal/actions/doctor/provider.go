package doctor

import (
	"fmt"
	"strings"

	"gitwiz.dev/gitwiz/internal/ai"
	"gitwiz.dev/gitwiz/internal/config"
	"gitwiz.dev/gitwiz/internal/runtime"
)

// checkProvider verifies the AI provider configuration: the provider id
// must be known, the model resolvable, and the stored key readable. Only
// the redacted key prefix is ever printed.
func checkProvider(rc *runtime.Context, warnings, errors []string) ([]string, []string) {
	splog := rc.Splog

	settings, err := rc.Config.Load()
	if err != nil {
		errors = append(errors, fmt.Sprintf("configuration is unreadable: %v", err))
		splog.Error("  configuration is unreadable: %v", err)
		return warnings, errors
	}

	if settings.Provider == "" {
		warnings = append(warnings, "no AI provider configured ('gitwiz config set')")
		splog.Warn("  No AI provider configured; AI-assisted messages are unavailable")
		return warnings, errors
	}

	backend, known := ai.BackendFor(settings.Provider)
	if !known {
		errors = append(errors, fmt.Sprintf("unknown provider %q", settings.Provider))
		splog.Error("  Unknown provider %q (known: %s)", settings.Provider, strings.Join(ai.BackendIDs(), ", "))
		return warnings, errors
	}
	splog.Info("  ✅ provider %s", backend.ID)

	if settings.Model == "" {
		splog.Info("  ✅ model %s (backend default)", backend.DefaultModel)
	} else {
		splog.Info("  ✅ model %s", settings.Model)
	}

	key, err := rc.Config.APIKey(settings)
	switch {
	case err != nil:
		errors = append(errors, fmt.Sprintf("stored API key cannot be read: %v", err))
		splog.Error("  Stored API key cannot be read: %v", err)
	case key == "":
		warnings = append(warnings, "no API key stored for "+backend.ID)
		splog.Warn("  No API key stored; run 'gitwiz config set'")
	default:
		splog.Info("  ✅ API key %s", config.RedactKey(key))
	}

	return warnings, errors
}
