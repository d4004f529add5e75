// Package ioutils provides file system and archive utilities.
//
// This package contains functions for:
//   - File writing and directory creation
//   - SHA-1 digests of downloaded files
//   - Removal of files that failed verification
//   - Extraction of platform native libraries from jar archives
//
// # File Operations
//
//	// Write data to file, creating parents
//	err := ioutils.WriteFile(ctx, "/mc/assets/indexes/1.20.4.json", data)
//
//	// Digest a download
//	sum, err := ioutils.FileSHA1("/mc/versions/1.20.4/1.20.4.jar")
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/mc/assets/objects/ab")
//
// # Native Libraries
//
// ShouldExtract decides which archive entries are native libraries for a
// platform, and NativesExtractor flattens them into a natives directory:
//
//	ex := ioutils.NewNativesExtractor(platformInfo)
//	res, err := ex.Extract(ctx, archivePath, layout.NativesDir(versionID))
//	fmt.Printf("%d extracted, %d skipped\n", len(res.Extracted), res.Skipped)
package ioutils
