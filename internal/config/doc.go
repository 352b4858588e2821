// Package config persists the assistant's provider settings.
//
// Settings live in a single JSON document in the user's config
// directory. The API key is not written to that document directly: it
// goes to the platform keychain and the document records a reference.
// When no keychain is available the key falls back to a visible plain
// encoding, flagged by its scheme prefix in the stored format so the
// downgrade is never silent.
package config
