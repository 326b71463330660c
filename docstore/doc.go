// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package docstore keeps named collections of JSON documents in one SQL table.

Each document is addressed by (collection, id). The same code runs against
PostgreSQL, where bodies are JSONB, and SQLite, where they are TEXT.

# Writes

	id, err := store.Add(ctx, "notices", notice)     // generated id
	err := store.Create(ctx, "ballots", key, ballot) // ErrAlreadyExists if taken
	err := store.Set(ctx, "meeting_config", "current", cfg)

Create is the conditional write: the primary key turns a second insert of
the same id into ErrAlreadyExists on both backends.

# Reads

	err := store.Get(ctx, "meeting_results", id, &result) // ErrNotFound
	docs, err := store.Query(ctx, "ballots", docstore.Eq("meeting_id", id))

Filters compare top-level string fields for equality. Results come back
oldest first.
*/
package docstore
