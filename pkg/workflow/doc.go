/*
Package workflow implements the article writer state machine.

The machine is a transition function over a session's stage and context. Each
call to Step consumes one user message and moves the session at most one stage
forward:

	idle -> awaiting_context -> awaiting_title_choice -> awaiting_blog_choice -> idle

From idle, only a start trigger ("write", "new article") is handled; every other
message is reported as not handled so the caller can fall back to intent
classification. Every other stage consumes the message verbatim as the expected
answer. Generation failures do not stop the workflow: their visible text becomes
the reply and the stage still advances.

The machine blanks the session when the article is delivered but never removes
it from any store; that belongs to the caller.
*/
package workflow
