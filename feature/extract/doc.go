// Package extract parses usage events out of uploaded tablet artifacts.
//
// Three formats are supported: delimited user logs (Delimited), JSON lines
// app logs (JSONLines) and per-device SQLite databases (Relational). A
// Dispatcher routes each classified artifact to its extractor, expanding zip
// archives into a temporary directory first.
//
// Recoverable problems are returned wrapped in ErrSkip; the caller logs and
// continues. Every other error aborts the run.
package extract
