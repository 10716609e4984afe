// Package render presents settings trees and pending changes to people:
// ordered JSON and YAML dumps of a kvstore tree, and line diffs between the
// current and proposed contents of an output file.
package render
