//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 创建并校验 gdata 在 Android 上使用的 saves 目录
//
// gdata 使用 /data/data/{package}/ 但不会预先创建子目录，
// 需要在 gdata.Open 之前调用。返回校验过的目录。
func EnsureStorageDir() (string, error) {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to read package name: %w", err)
	}
	pkg, err := androidPackage(cmdline)
	if err != nil {
		return "", err
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("aurafx"), 0644); err != nil {
		return "", fmt.Errorf("storage dir %s is not writable: %w", dir, err)
	}
	os.Remove(probe)
	return dir, nil
}

// androidPackage 从 /proc/self/cmdline 内容中取出包名（第一个参数）
func androidPackage(cmdline []byte) (string, error) {
	name, _, _ := bytes.Cut(cmdline, []byte{0})
	name = bytes.TrimSpace(name)
	if len(name) == 0 {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return string(name), nil
}
