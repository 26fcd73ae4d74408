// Package registrar is the data backbone of a school-management backend:
// a disciplined access layer over a Cassandra-family store plus the
// relation managers that enforce business rules on top of it.
//
// # Architecture
//
// The layers, bottom up:
//
//   - store: one shared session, three execution primitives (Exec, ExecCAS,
//     SelectRows), driver-error classification into a closed Result-code
//     set, and optional retry with backoff for transient failures.
//   - table: a generic typed-table component instantiated per entity from a
//     Definition, plus LinkTable for owner-to-members relationship tables.
//     Every single-row write is a conditional (IF [NOT] EXISTS) statement.
//   - schema: the entity structs and their table definitions.
//   - manager: the relation managers. They validate inputs, enforce
//     cross-entity rules (existence checks, id generation, cascades,
//     delete-then-insert updates of clustering-keyed rows), and map
//     outcomes to HTTP-like status codes.
//
// HTTP framing and routing are not part of this module; an HTTP adapter
// decodes bearer claims via auth.Decoder, validates request bodies, and
// calls manager methods directly.
//
// # Usage
//
//	conn, res := store.Connect(store.DefaultConfig(),
//	    store.WithLogger(logger),
//	)
//	if !res.IsOK() {
//	    // handle connection failure
//	}
//	app, err := registrar.New(conn,
//	    registrar.WithLogger(logger),
//	    registrar.WithMailer(mailer),
//	)
//	if err != nil {
//	    // handle wiring failure
//	}
//	if res := app.Configure(ctx, true); !res.IsOK() {
//	    // handle bootstrap failure
//	}
//	defer app.Close()
//
//	resp := app.Environment().CreateCountry(ctx, manager.CreateCountryInput{
//	    Name: "Romania", Code: "RO",
//	})
//
// # Concurrency
//
// One App is built at process start and shared by every request-handling
// goroutine. All post-Configure state is read-only; serialization of
// concurrent writers happens at the store through lightweight
// transactions, and a lost race surfaces as a 409, never a silent
// overwrite.
package registrar
