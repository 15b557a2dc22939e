package scenes

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/decker502/aurafx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// RealtimeScript 实时检测脚本名
const RealtimeScript = "realtime_detection.py"

var realtimeSteps = []feature{
	{"1. Write & Run", "Press L to write the launcher script, then run it from a terminal."},
	{"2. Camera Access", "The application will open in a new window and request camera access."},
	{"3. Controls", "Press 'q' to quit, 's' to save screenshot, 'c' to toggle confidence."},
}

var realtimeFeatures = []string{
	"Real-time human detection",
	"Safety equipment detection (fire extinguishers, toolboxes, oxygen tanks)",
	"Live FPS monitoring",
	"Screenshot capture (press 's')",
	"Confidence threshold adjustment",
	"GPU acceleration support",
}

// RealtimeScene 实时检测启动页
//
// 实时检测在独立进程中运行，本页只负责写出启动脚本。
type RealtimeScene struct {
	// ScriptDir 启动脚本写入目录
	ScriptDir string
	// WorkDir 脚本中切换到的目录（realtime_detection.py 所在目录）
	WorkDir   string
	goos      string
	message   string
}

// NewRealtimeScene 创建实时检测页
func NewRealtimeScene() *RealtimeScene {
	return &RealtimeScene{ScriptDir: ".", WorkDir: ".", goos: runtime.GOOS}
}

// Update 按 L 写出启动脚本
func (s *RealtimeScene) Update(deltaTime float64) {
	if utils.KeyJustPressed(ebiten.KeyL) {
		s.Launch()
	}
}

// Launch 写出启动脚本并返回其路径
func (s *RealtimeScene) Launch() (string, error) {
	name, content := launcherScript(s.goos, s.WorkDir)
	out := filepath.Join(s.ScriptDir, name)
	if err := os.WriteFile(out, []byte(content), 0o755); err != nil {
		log.Printf("[RealtimeScene] failed to write launcher: %v", err)
		s.message = "Failed to create launch file. Please run the script manually."
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	log.Printf("[RealtimeScene] wrote launcher %s", out)
	s.message = fmt.Sprintf("Launcher written! Run %q to start detection.", out)
	return out, nil
}

// Message 返回最近一次操作的提示
func (s *RealtimeScene) Message() string {
	return s.message
}

func launcherScript(goos, workDir string) (string, string) {
	if goos == "windows" {
		return "run_realtime.bat", fmt.Sprintf("@echo off\r\ncd /d \"%s\"\r\npython %s\r\npause\r\n", workDir, RealtimeScript)
	}
	return "run_realtime.sh", fmt.Sprintf("#!/bin/sh\ncd %q || exit 1\nexec python3 %s\n", workDir, RealtimeScript)
}

// Draw 绘制实时检测页
func (s *RealtimeScene) Draw(screen *ebiten.Image) {
	drawBackground(screen)

	cx := float64(screen.Bounds().Dx()) / 2
	y := float64(NavBarHeight) + 32
	utils.DrawCenteredText(screen, "REAL-TIME DETECTION", uiFace, cx, y, scaleTitle*0.75, colorTitle)
	y += lineHeight*scaleTitle*0.75 + 16
	utils.DrawCenteredText(screen, "Launch the standalone real-time detection application for live safety equipment monitoring.",
		uiFace, cx, y, scaleBody, colorMuted)
	y += lineHeight + 24

	utils.DrawCenteredText(screen, "Press L to create the launcher", uiFace, cx, y, scaleHead, colorSuccess)
	y += lineHeight*scaleHead + 8
	if s.message != "" {
		utils.DrawCenteredText(screen, s.message, uiFace, cx, y, scaleBody, colorSubtle)
	}
	y += lineHeight + 24

	utils.DrawText(screen, "How to Use", uiFace, contentMargin, y, scaleHead, colorTitle)
	y += lineHeight*scaleHead + 8
	for _, step := range realtimeSteps {
		utils.DrawText(screen, step.title, uiFace, contentMargin, y, scaleBody, colorTitle)
		utils.DrawText(screen, step.body, uiFace, contentMargin+160, y, scaleBody, colorSubtle)
		y += lineHeight + 6
	}
	y += 18

	utils.DrawText(screen, "Features", uiFace, contentMargin, y, scaleHead, colorTitle)
	y += lineHeight*scaleHead + 8
	for _, f := range realtimeFeatures {
		utils.DrawText(screen, "+", uiFace, contentMargin, y, scaleBody, colorSuccess)
		utils.DrawText(screen, f, uiFace, contentMargin+16, y, scaleBody, colorSubtle)
		y += lineHeight + 4
	}
}
