// Package logging is the ledger's thin wrapper around charmbracelet/log.
// It exists to give every component a named, leveled logger without
// making callers depend on charmbracelet/log directly, and to keep
// diagnostic output off of stdout, which is reserved for the CSV account
// summary.
//
// # Overview
//
// The CLI entrypoint logs through the root Logger, and the engine hands
// each Shard its own named child Logger ("shard-N") so shard output is
// not mixed into one unnamed stream. A Logger built by New is the root; calling
// Component on it produces a child Logger that shares the parent's level
// and output but prefixes every line with a component name, so a log
// line can always be traced back to which shard or subsystem emitted it.
//
// # Architecture
//
//	logging.New(cfg)                    root Logger, prefix ""
//	       │
//	       ├── .Component("cli")         prefix "cli"
//	       ├── .Component("shard-0")     prefix "shard-0"
//	       ├── .Component("shard-1")     prefix "shard-1"
//	       └── .Component("shard-N")     prefix "shard-N"
//
// All of the above share one underlying charmbracelet/log.Logger
// configuration (level, time format, output writer); only the prefix
// differs per component.
//
// # Why stderr, not stdout
//
// DefaultConfig and every constructor in cmd/ledgerstream direct log
// output to os.Stderr. cmd/ledgerstream writes the final CSV account
// summary to stdout (or a file), and the two streams must never
// interleave — a user piping stdout into another tool must see only
// well-formed CSV, never a log line. This mirrors the spec's allowance
// for "optional diagnostic logging" on rejected transactions: logging is
// strictly additive and must never contaminate the primary output
// channel.
//
// # Levels
//
// Debug, Info, Warn, Error, and Fatal are re-exported from
// charmbracelet/log so callers never need to import that package
// directly. ParseLevel converts a case-insensitive level name into a
// Level, defaulting to Info for anything unrecognized rather than
// returning an error. cmd/ledgerstream's --log-level flag is checked by
// kong before ParseLevel sees it: only debug, info, warn, and error are
// accepted there, and any other value stops the CLI with a usage error.
//
// # Thread-safety
//
// A *Logger (root or child) is safe for concurrent use by multiple
// goroutines: every shard's worker goroutine logs through its own
// Component-derived child Logger concurrently with every other shard's,
// and charmbracelet/log.Logger itself serializes writes to the
// underlying io.Writer internally.
//
// # Usage example
//
//	log := logging.New(&logging.Config{Level: "debug"})
//	shardLog := log.Component("shard-0")
//	shardLog.Debugf("rejected %s client=%d tx=%d: %v", kind, client, tx, err)
//
// # See also
//
//   - internal/engine: builds one Component logger per shard via
//     WithLogger.
//   - internal/shard: the only consumer of a shard's Component logger,
//     used to report dropped transactions at Debug level.
package logging
