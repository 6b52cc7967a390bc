/*
Package ports defines the driven ports (interfaces) of the scribe chat router.

These interfaces decouple the routing core from external implementations,
allowing it to work with various session stores, generation backends and
document stores.

# Key Interfaces

  - SessionStore: Responsible for persisting and loading per-user Sessions.
  - DistributedLocker: Provides distributed locking for concurrent session access across replicas.
  - Generator: Produces text for a prompt identifier and substitution variables.
  - Completer: Sends a fully rendered prompt to a language model.
  - DocumentLookup: Fetches the article under discussion by ID.
*/
package ports
