// Package component defines the lifecycle contract shared by long-lived
// parts of a fetchkit process and a Registry that starts them in order
// and stops them in reverse.
package component
