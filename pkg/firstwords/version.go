// Package firstwords holds release metadata shared by the binary and the
// library packages.
package firstwords

// Version is the release version of firstwords.
const Version = "0.1.0"

// ModulePath is the Go module path of firstwords.
const ModulePath = "github.com/mesh-intelligence/firstwords"
