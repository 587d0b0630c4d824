//go:build debug

package pagewindow

const debugAssertions = true
