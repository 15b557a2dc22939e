package scenes

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/decker502/aurafx/pkg/game"
	"github.com/decker502/aurafx/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// UndoWindow 删除或清空后可撤销的时间
const UndoWindow = 5 * time.Second

type undoKind int

const (
	undoNone undoKind = iota
	undoDelete
	undoClear
)

// undoState 最近一次可撤销的操作
type undoState struct {
	kind    undoKind
	records []game.DetectionRecord
	expires time.Time
}

// HistoryScene 检测历史页
//
// 上下键选择，Enter 展开，Delete 删除，C 清空，U 在 5 秒内撤销。
type HistoryScene struct {
	history  *game.HistoryManager
	now      func() time.Time
	selected int
	expanded bool
	undo     undoState
}

// NewHistoryScene 创建历史页
func NewHistoryScene(history *game.HistoryManager) *HistoryScene {
	return &HistoryScene{history: history, now: time.Now}
}

// OnEnter 进入页面时重置展开状态
func (s *HistoryScene) OnEnter() {
	s.expanded = false
	s.clampSelection()
}

// Update 处理键盘输入并让过期的撤销失效
func (s *HistoryScene) Update(deltaTime float64) {
	switch {
	case utils.KeyJustPressed(ebiten.KeyArrowUp):
		s.MoveSelection(-1)
	case utils.KeyJustPressed(ebiten.KeyArrowDown):
		s.MoveSelection(1)
	case utils.KeyJustPressed(ebiten.KeyEnter):
		s.expanded = !s.expanded && s.history.Len() > 0
	case utils.KeyJustPressed(ebiten.KeyDelete, ebiten.KeyBackspace):
		s.DeleteSelected()
	case utils.KeyJustPressed(ebiten.KeyC):
		s.ClearAll()
	case utils.KeyJustPressed(ebiten.KeyU):
		s.Undo()
	}

	if s.undo.kind != undoNone && !s.UndoAvailable() {
		s.undo = undoState{}
	}
}

// MoveSelection 移动选中项
func (s *HistoryScene) MoveSelection(delta int) {
	s.selected += delta
	s.clampSelection()
}

// Selected 返回选中项下标
func (s *HistoryScene) Selected() int {
	return s.selected
}

func (s *HistoryScene) clampSelection() {
	s.selected = max(0, min(s.selected, s.history.Len()-1))
}

// DeleteSelected 删除选中的记录，可在 UndoWindow 内撤销
func (s *HistoryScene) DeleteSelected() bool {
	entries := s.history.Entries()
	if len(entries) == 0 {
		return false
	}
	s.clampSelection()
	rec, ok, err := s.history.Remove(entries[s.selected].ID)
	if err != nil {
		log.Printf("[HistoryScene] Warning: failed to save history: %v", err)
	}
	if !ok {
		return false
	}
	s.expanded = false
	s.clampSelection()
	s.armUndo(undoDelete, []game.DetectionRecord{rec})
	return true
}

// ClearAll 清空所有记录，可在 UndoWindow 内撤销
func (s *HistoryScene) ClearAll() bool {
	if s.history.Len() == 0 {
		return false
	}
	removed, err := s.history.Clear()
	if err != nil {
		log.Printf("[HistoryScene] Warning: failed to save history: %v", err)
	}
	s.expanded = false
	s.selected = 0
	s.armUndo(undoClear, removed)
	return true
}

func (s *HistoryScene) armUndo(kind undoKind, recs []game.DetectionRecord) {
	s.undo = undoState{kind: kind, records: recs, expires: s.now().Add(UndoWindow)}
}

// UndoAvailable 是否还能撤销
func (s *HistoryScene) UndoAvailable() bool {
	return s.undo.kind != undoNone && s.now().Before(s.undo.expires)
}

// Undo 恢复最近一次删除或清空的记录
func (s *HistoryScene) Undo() bool {
	if !s.UndoAvailable() {
		return false
	}
	if err := s.history.Restore(s.undo.records...); err != nil {
		log.Printf("[HistoryScene] Warning: failed to save history: %v", err)
	}
	log.Printf("[HistoryScene] restored %d records", len(s.undo.records))
	s.undo = undoState{}
	s.clampSelection()
	return true
}

// Draw 绘制历史页
func (s *HistoryScene) Draw(screen *ebiten.Image) {
	drawBackground(screen)

	cx := float64(screen.Bounds().Dx()) / 2
	y := float64(NavBarHeight) + 32
	utils.DrawCenteredText(screen, "DETECTION HISTORY", uiFace, cx, y, scaleTitle*0.75, colorTitle)
	y += lineHeight*scaleTitle*0.75 + 24

	entries := s.history.Entries()
	if len(entries) == 0 {
		utils.DrawCenteredText(screen, "No detections yet. Drop an image on the Detect page to get started.", uiFace, cx, y, scaleBody, colorMuted)
	}

	rowH := lineHeight*scaleBody + 10
	for i, rec := range entries {
		clr := colorSubtle
		if i == s.selected {
			vector.DrawFilledRect(screen, float32(contentMargin-8), float32(y-4), float32(pageWidth(screen)+16), float32(rowH), colorRowHighlight, false)
			clr = colorTitle
		}
		utils.DrawText(screen, formatHistoryRow(rec), uiFace, contentMargin, y, scaleBody, clr)
		y += rowH

		if i == s.selected && s.expanded {
			for _, line := range historyDetailLines(rec) {
				utils.DrawText(screen, line, uiFace, contentMargin+24, y, scaleBody, colorMuted)
				y += lineHeight + 2
			}
			y += 6
		}
	}

	footer := float64(screen.Bounds().Dy()) - 2*lineHeight - 16
	utils.DrawText(screen, "Up/Down: select   Enter: details   Delete: remove   C: clear all", uiFace, contentMargin, footer, scaleBody, colorMuted)
	if s.UndoAvailable() {
		msg := "Detection deleted. Press U to undo."
		if s.undo.kind == undoClear {
			msg = "History cleared. Press U to undo."
		}
		utils.DrawText(screen, msg, uiFace, contentMargin, footer+lineHeight+4, scaleBody, colorAccent)
	}
}

func formatHistoryRow(rec game.DetectionRecord) string {
	return fmt.Sprintf("%s  %-28s %3d objects  avg %.1f%%",
		rec.Date.Local().Format("2006-01-02 15:04:05"), rec.FileName, rec.TotalObjects(), rec.AverageConfidence()*100)
}

func historyDetailLines(rec game.DetectionRecord) []string {
	classes := make([]string, 0, len(rec.ClassCounts))
	for c := range rec.ClassCounts {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	counts := make([]string, len(classes))
	for i, c := range classes {
		counts[i] = fmt.Sprintf("%s: %d", c, rec.ClassCounts[c])
	}
	lines := []string{strings.Join(counts, "   ")}
	for _, d := range rec.Detections {
		lines = append(lines, formatDetectionRow(d))
	}
	return lines
}
