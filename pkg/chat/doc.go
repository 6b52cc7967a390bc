// Package chat is the entry point for inbound messages.
//
// Router.Respond applies the routing precedence: a greeting short-circuits
// everything, then the article writer workflow gets the message under the
// session's lock, and anything it declines is classified and answered from the
// configured article. A session whose workflow just delivered the final article
// is deleted before the reply is returned.
package chat
