//go:build !avcdebug

package tag

const debugEnabled = false
