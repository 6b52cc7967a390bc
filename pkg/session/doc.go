/*
Package session implements session management and persistence orchestration.

The Manager serializes work per session ID with reference-counted mutexes, so
concurrent requests for the same session run one after the other while
requests for different sessions never wait on each other. An optional
distributed locker extends the guarantee across replicas sharing a store.

Transact is the unit of work of the chat router: load-or-create, mutate, then
save or delete, all while holding the session's lock. Sweep and RunJanitor
bound the growth of idle sessions.
*/
package session
