// Package minecraft reads the Mojang launcher metadata and plans downloads
// from it.
//
// # Documents
//
// Three JSON documents drive a download, all fetched with a single GET by
// Client:
//
//   - the version list (version_manifest.json), naming every release and
//     the URL of its manifest
//   - the version manifest, describing the client jar, libraries, logging
//     config, mappings and asset index of one version
//   - the asset index, mapping asset names to content-addressed objects
//
// Their shapes live in the dto subpackage. Decoding is lenient: a field of
// the wrong JSON type decodes as empty instead of failing the document, so
// one broken library entry only costs that library.
//
// # Planning
//
// Planner converts the decoded documents into model.Task values:
//
//	client := minecraft.NewClient(http.NewClient())
//	version, raw, err := client.FetchVersion(ctx, url)
//	if err != nil {
//	    return err
//	}
//
//	planner := minecraft.NewPlanner(layout, info, settings.AssetBaseURL, nil)
//	libs := planner.LibraryTasks(version)
//
// Asset objects are stored under assets/objects/<hash[0:2]>/<hash> and
// downloaded from <asset base>/<hash[0:2]>/<hash>.
package minecraft
