/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
Two DDL variants exist because sqlite and postgres spell autoincrement
primary keys differently; everything else is shared SQL.

# Tables

  - users: one row per known email address
  - experiments: experiment metadata plus the submitted rows as a JSON
    array in the data column

# Relationships

	users 1──* experiments

The data column is TEXT holding a JSON array of string-to-string objects,
one object per submitted form row. It is decoded defensively by the store
package; see store.ErrDeserialize.

# Indexes

  - experiments.email (per-owner listing)
*/
package db
