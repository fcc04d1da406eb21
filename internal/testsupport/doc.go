// Package testsupport provides shared helpers for building test
// configurations and fake source exports.
package testsupport
