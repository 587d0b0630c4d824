//go:build !debug

package pagewindow

const debugAssertions = false
