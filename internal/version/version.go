package version

// VERSION is the current release.
const VERSION = "v0.1.0"
