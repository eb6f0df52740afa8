// Package stocknote provides the core logic for a personal stock tracker
// aimed at the Taiwan market: holdings, dividends, and charitable donations,
// with realized/unrealized profit-and-loss derived on demand.
//
// The package is deliberately split in two independent pieces:
//   - A ledger engine that replays a holding's trades in chronological order
//     using the weighted-average cost method and returns a Snapshot. It is a
//     pure calculator: it never mutates its input and holds no state.
//   - A bulk import parser that turns loosely formatted pasted text into
//     typed records, collecting one error per offending line instead of
//     aborting the batch.
//
// Around them the package carries the supporting pieces a real tool needs:
// record stores serialized as a single JSON backup, a monthly closing-price
// history, report builders for charts, settings, and a TWSE price fetcher.
//
// This package is the foundation of the `sn` command-line tool.
package stocknote
