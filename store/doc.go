/*
Package store persists users and experiments.

# Operations

	st := store.New(db)
	st.RegisterUser(ctx, email)        // idempotent
	st.ListExperiments(ctx, owner)     // newest first
	id, err := st.Save(ctx, exp)       // insert or whole-document overwrite
	exp, err := st.Load(ctx, id)

Save with a zero id inserts and returns the generated id; with a
non-zero id it replaces the stored name and row payload atomically in a
single UPDATE. There is no per-row update path.

# Row Payloads

Submitted rows are stored in the experiments.data column as a JSON
array of string-to-string objects. Decoding goes through a typed
target ([]models.Record) so malformed or tampered payloads are rejected
with ErrDeserialize instead of being interpreted loosely.

# Error Taxonomy

	ErrPersistence  storage I/O failure on any operation
	ErrNotFound     no experiment with the requested id
	ErrDeserialize  stored payload is not a valid row array

All three are sentinel errors wrapped with context; match with
errors.Is.
*/
package store
