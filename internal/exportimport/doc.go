// Package exportimport reads collective.exportimport trees and writes
// plone.exportimport trees.
//
// A source directory holds one JSON file per content item plus sidecar
// metadata files (export_* prefix, errors.json, paths.json). The destination
// holds content/<UID>/data.json per retained item, decoded blob files next to
// each data file, the consolidated content/__metadata__.json, and a
// relations.json with UID-remapped relation pairs at the destination root.
package exportimport
