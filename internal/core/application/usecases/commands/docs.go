// Package commands contains the operations that change orders. Order creation
// delegates to the orchestration service; rejection and deletion are
// administrative and go straight to the repository. Every command is built
// through its constructor and checked again by its handler.
package commands
