// Package sandbox implements a named-module registry with lazy singleton
// instantiation and dependency injection.
//
// Modules are registered under a unique name together with a Factory and the
// list of dependencies they require. Starting a module builds a fresh Toolbox
// holding each required dependency, starting those dependencies first when
// they have not been started yet, and hands it to the factory. The factory's
// return value is cached as the module's singleton instance.
//
//	sb := sandbox.New()
//
//	sb.Register("Store", func(tb *sandbox.Toolbox, args ...any) (any, error) {
//	    return NewStore(), nil
//	})
//
//	sb.Register("Mailer", func(tb *sandbox.Toolbox, args ...any) (any, error) {
//	    store := tb.MustGet("Store").(*Store)
//	    return NewMailer(store), nil
//	}, sandbox.Ref("Store"))
//
//	mailer, err := sb.Start("Mailer")
//
// # Dependencies
//
// A dependency is either a reference to another module (Ref) or a map of
// ready-made values injected under alias names (Instances). References to
// names that are not registered are skipped, which lets modules be registered
// in any order. Starting an unregistered name directly is an error.
//
// # Extensions
//
// Extend adds a named member to the Prototype shared by every Toolbox the
// sandbox builds afterwards. Two members are always present: "lib", the base
// library handle given with WithLibrary, and "instance", a lookup function for
// already-started modules.
//
// # Lifecycle hooks
//
// Instances implementing Initializer get Init called right after Start caches
// them. Dependencies started on the way are cached without it. Instances
// implementing Destroyer get Destroy called when the module is stopped or
// removed.
//
// A Sandbox is not safe for concurrent use.
package sandbox
