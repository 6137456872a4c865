package git

// MirrorHost exports mirrorHost for testing.
var MirrorHost = mirrorHost
