// Package platform reports the running operating system and architecture
// in the vocabulary used by version manifests ("windows", "osx", "linux"
// and "64"/"32").
package platform
