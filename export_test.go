package outputfs

// This file is part of the package tests (package outputfs) and provides
// helpers that allow tests in the external package to access internal
// package constructs.

// CurrentLogger returns the logger used by the package.
var CurrentLogger = currentLogger
