// Package report analyzes a source export without migrating it, tallying
// portal types, creators, workflow states, and layouts so a migration
// configuration can be written against real data.
package report
