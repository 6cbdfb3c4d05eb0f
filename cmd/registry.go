package cmd

import (
	"github.com/spf13/cobra"

	"grocery.GO/core/registry"
)

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register adds an extension command. Call from init() in custom packages.
// Panics once the registry is locked, or when the name is already taken by a
// built-in grocery command or an earlier registration.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	name := c.Name()
	if found, _, err := rootCmd.Find([]string{name}); err == nil && found != rootCmd {
		panic("cmd/registry: command " + name + " is built in")
	}
	list := registered()
	for _, r := range list {
		if r.Name() == name {
			panic("cmd/registry: duplicate command " + name)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(list, c))
}

// Apply attaches registered commands to the root command and locks the
// registry. Later calls do nothing.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	for _, c := range registered() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
