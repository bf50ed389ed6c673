package main

import (
	"bytes"
	"testing"
)

// useBufferWriters 在测试期间把 stdOut/stdErr 替换为内存 buffer，结束后自动恢复。
func useBufferWriters(t *testing.T) {
	t.Helper()

	prevOut, prevErr := stdOut, stdErr
	stdOut, stdErr = &bytes.Buffer{}, &bytes.Buffer{}

	t.Cleanup(func() {
		stdOut, stdErr = prevOut, prevErr
	})
}

// stdOutBuffer 返回当前生效的 stdout buffer；未启用 useBufferWriters 时返回空 buffer。
func stdOutBuffer() *bytes.Buffer {
	if buf, ok := stdOut.(*bytes.Buffer); ok {
		return buf
	}
	return &bytes.Buffer{}
}

// stdErrBuffer 返回当前生效的 stderr buffer。
func stdErrBuffer() *bytes.Buffer {
	if buf, ok := stdErr.(*bytes.Buffer); ok {
		return buf
	}
	return &bytes.Buffer{}
}
