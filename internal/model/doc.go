// Package model defines the core data structures used throughout
// minecraft-fetcher.
//
// # Layout
//
// Layout maps a game root directory onto the directories the fetcher fills:
//
//	layout := model.NewLayout("/home/user/.minecraft")
//	if err := layout.EnsureDirs(); err != nil {
//	    return err
//	}
//	fmt.Println(layout.VersionJar("1.20.4"))
//
// The produced tree looks like:
//
//	versions/<id>/<id>.jar
//	versions/<id>/client-1.12.xml
//	versions/<id>/<id>-mappings.txt
//	versions/<id>/<id>-natives/<flattened files>
//	libraries/<artifact path>
//	assets/indexes/<id>.json
//	assets/objects/<hash[0:2]>/<hash>
//
// # Task
//
// Task describes one planned download: where it comes from, where it goes,
// the SHA-1 it must match and whether it is a native archive.
package model
