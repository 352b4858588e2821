// Package runtime provides the execution context for gitwiz commands.
//
// It encapsulates shared dependencies needed by actions, such as the
// executor, git gateway, prompter, configuration store and repository
// root path.
package runtime
