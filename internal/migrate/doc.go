// Package migrate orchestrates a full migration run: it scans the source
// export, pushes every content item through the step pipeline, writes the
// retained items into the destination layout, and finishes with the
// consolidated metadata, relations, and audit report files.
package migrate
