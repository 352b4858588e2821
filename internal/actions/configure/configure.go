// Package configure implements the config command: interactive provider
// setup and a redacted view of what is stored.
package configure

import (
	"fmt"
	"strings"

	"gitwiz.dev/gitwiz/internal/ai"
	"gitwiz.dev/gitwiz/internal/config"
	"gitwiz.dev/gitwiz/internal/runtime"
	"gitwiz.dev/gitwiz/internal/tui"
)

// Set walks the operator through choosing a provider, model, and API key,
// then persists the result.
func Set(rc *runtime.Context) error {
	splog := rc.Splog

	settings, err := rc.Config.Load()
	if err != nil {
		return err
	}

	ids := ai.BackendIDs()
	options := make([]tui.SelectOption, len(ids))
	defaultIndex := 0
	for i, id := range ids {
		options[i] = tui.SelectOption{Label: id, Value: id}
		if id == settings.Provider {
			defaultIndex = i
		}
	}
	provider, err := rc.Prompter.Select("AI provider:", options, defaultIndex)
	if err != nil {
		return err
	}
	backend, _ := ai.BackendFor(provider)

	// Keep a previously chosen model only when the provider stays the
	// same; models are provider-specific.
	modelDefault := backend.DefaultModel
	if settings.Provider == provider && settings.Model != "" {
		modelDefault = settings.Model
	}
	model, err := rc.Prompter.Input("Model:", modelDefault)
	if err != nil {
		return err
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = backend.DefaultModel
	}

	key, err := rc.Prompter.Password(fmt.Sprintf("API key for %s:", provider))
	if err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key must not be empty")
	}

	settings.Provider = provider
	settings.Model = model
	if fallback := rc.Config.SetAPIKey(settings, key); fallback {
		splog.Warn("The system keychain is unavailable; the key is stored in the config file with a visible encoding.")
	}
	if err := rc.Config.Save(settings); err != nil {
		return err
	}

	splog.Info("Saved. Provider %s with model %s.", provider, model)
	return nil
}

// Show prints the stored configuration. The API key appears only as its
// redacted prefix.
func Show(rc *runtime.Context) error {
	splog := rc.Splog

	settings, err := rc.Config.Load()
	if err != nil {
		return err
	}

	if settings.Provider == "" {
		splog.Info("No AI provider configured.")
		splog.Tip("Run 'gitwiz config set' to configure one.")
		return nil
	}

	model := settings.Model
	annotation := ""
	if model == "" {
		if backend, ok := ai.BackendFor(settings.Provider); ok {
			model = backend.DefaultModel
			annotation = " (backend default)"
		}
	}

	redacted := "(unreadable)"
	if key, err := rc.Config.APIKey(settings); err == nil {
		if key == "" {
			redacted = "(not set)"
		} else {
			redacted = config.RedactKey(key)
		}
	}

	splog.Info("Provider     %s", settings.Provider)
	splog.Info("Model        %s%s", model, annotation)
	splog.Info("API key      %s", redacted)
	splog.Info("Key storage  %s", config.KeyStorageDescription(settings))
	return nil
}
