package domain

import "errors"

// ErrNoScan is returned by read paths before the first scan completes or
// after the cached one expires.
var ErrNoScan = errors.New("no scan available yet")
