/*
Package session provides the bearer-token session store.

Each logged-in browser holds one Session: the user's email, the current
navigation page, and the in-progress draft experiment. The session is an
explicit object with a defined lifecycle - created at login, dropped at
logout or after the idle TTL - rather than global mutable state.

# Tokens

Tokens are random 24-byte (192-bit) secrets:

	token, err := session.GenerateToken()

URL-safe base64 encoded without padding, sent by clients in the
X-Session-Token header.

# Lifecycle

	store := session.NewStore(12 * time.Hour)
	sess, _ := store.Start("researcher@lab.example")
	sess, ok := store.Get(token)   // refreshes the idle timer
	store.End(token)               // logout, idempotent

# Navigation

Three pages exist: login, list, form. Any page is reachable from any
other - the loose state machine is intentional and only unknown page
names are rejected:

	err := sess.Navigate(models.PageForm)

# Draft Experiments

The draft is the form controller's state: nil means idle, non-nil means
editing. Bind attaches a new or loaded experiment, AppendRow adds a
submitted record (append-only), ClearDraft returns to idle after a save.
Draft() hands out deep copies so callers cannot bypass the lock.

Sessions live in process memory only. Unsaved rows survive any export
or save failure, but not a server restart.
*/
package session
