package testable

import (
	"io"
	"os"
)

// MockFileSystem is a FileSystem whose methods can be overridden per test.
// A nil function field falls back to the real file system.
type MockFileSystem struct {
	StatFn      func(name string) (os.FileInfo, error)
	CreateFn    func(name string) (io.WriteCloser, error)
	WriteFileFn func(name string, data []byte, perm os.FileMode) error
	ReadFileFn  func(name string) ([]byte, error)
	MkdirAllFn  func(path string, perm os.FileMode) error
}

var osFS OsFileSystem

// Stat calls StatFn or os.Stat.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn != nil {
		return m.StatFn(name)
	}
	return osFS.Stat(name)
}

// Create calls CreateFn or os.Create.
func (m *MockFileSystem) Create(name string) (io.WriteCloser, error) {
	if m.CreateFn != nil {
		return m.CreateFn(name)
	}
	return osFS.Create(name)
}

// WriteFile calls WriteFileFn or os.WriteFile.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.WriteFileFn != nil {
		return m.WriteFileFn(name, data, perm)
	}
	return osFS.WriteFile(name, data, perm)
}

// ReadFile calls ReadFileFn or os.ReadFile.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFn != nil {
		return m.ReadFileFn(name)
	}
	return osFS.ReadFile(name)
}

// MkdirAll calls MkdirAllFn or os.MkdirAll.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return osFS.MkdirAll(path, perm)
}

// Compile-time interface check.
var _ FileSystem = (*MockFileSystem)(nil)
