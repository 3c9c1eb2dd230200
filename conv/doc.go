// Package conv maps native Go values to dynajson value trees and back.
// Both directions walk an explicit frame stack so document depth is bounded
// by MaxDepth rather than the goroutine stack. Struct member metadata is
// derived once per type and kept in a relaxed single-writer cache.
package conv
