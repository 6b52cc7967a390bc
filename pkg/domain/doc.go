/*
Package domain contains the core domain models of the scribe chat router.

It defines the conversational session, the closed set of workflow stages of the
article writer, the intents used when no workflow claims a message, and the
result types exchanged with the generation and document collaborators. This
package is kept pure and free of I/O, following Hexagonal Architecture
principles.

# Key Entities

  - Session: per-user conversational state (Stage + WorkflowContext).
  - Stage: the position of a session inside the article writer workflow.
  - Generation: the outcome of a generation call, success or visible failure.
  - Document: an article served by the document store.
*/
package domain
