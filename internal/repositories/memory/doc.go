// Package memory provides in-process implementations of the repository
// interfaces. They back the memory storage driver and the service tests.
package memory
