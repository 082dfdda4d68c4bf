// Package main hosts the Menuforge CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into workflow
// operations against the session store: venue intake, interview capture,
// narrative approval, multilingual generation sweeps, snapshot restore, and
// delivery package assembly. It centralizes configuration resolution, the
// process lock, and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
