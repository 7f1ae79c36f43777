/*
Package ports defines the interfaces that decouple the cfrac engine from its adapters.

# Key Interfaces

  - ExpansionCache: stores expansions keyed by reduced rationals (Memory, Redis).
  - Calculator: the operations driving adapters (HTTP, MCP, CLI) call into.
*/
package ports
