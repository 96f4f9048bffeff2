// Package repositories implements SQLite persistence for the word store and the tile board state.
//
// Key Implementations:
//   - [WordRepository] : word records, listed in bare-form order, searchable by substring, usable as a
//     [dict.Source]
//   - [TileStateRepository] : expanded flags of board items, saved on every toggle and restored on start
//
// Schemas are created by the embedded migrations in package shared.
package repositories
