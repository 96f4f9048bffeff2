// Package models defines the domain entities shared by the tile board and the dictionary.
//
//   - [Item] : a tile on the two-column board; its layout width derives from the expanded flag
//   - [Word] : an immutable dictionary record as stored in the bundled words.json asset
package models
