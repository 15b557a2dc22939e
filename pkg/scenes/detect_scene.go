package scenes

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/decker502/aurafx/pkg/game"
	"github.com/decker502/aurafx/pkg/utils"
	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	detectTimeout  = 60 * time.Second
	maxUploadBytes = 20 << 20

	previewMaxW = 320
	previewMaxH = 240

	exportJSONName  = "detections.json"
	exportImageName = "detection_result.png"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".webp": true,
}

// ErrNoImageDropped 拖入的文件中没有图片
var ErrNoImageDropped = errors.New("no image file dropped")

type detectOutcome struct {
	fileName string
	result   *game.DetectionResult
	err      error
}

// DetectScene 图片检测页
//
// 把图片拖到窗口上即上传到检测服务，请求在后台 goroutine 中执行，
// 结果通过 channel 回到 Update。同一时间最多一个请求。
// 成功后元数据写入检测历史。
type DetectScene struct {
	detector game.Detector
	history  *game.HistoryManager

	// ExportDir J / S 键导出文件的目录
	ExportDir string
	now       func() time.Time

	results chan detectOutcome
	cancel  context.CancelFunc
	loading bool

	fileName    string
	result      *game.DetectionResult
	resultImage image.Image
	preview     *ebiten.Image
	errMsg      string
	message     string
}

// NewDetectScene 创建检测页
func NewDetectScene(detector game.Detector, history *game.HistoryManager) *DetectScene {
	return &DetectScene{
		detector:  detector,
		history:   history,
		ExportDir: ".",
		now:       time.Now,
		results:   make(chan detectOutcome, 1),
	}
}

// Update 处理拖入文件、导出快捷键和后台结果
func (s *DetectScene) Update(deltaTime float64) {
	if files := ebiten.DroppedFiles(); files != nil {
		name, data, err := readDroppedImage(files)
		if err != nil {
			log.Printf("[DetectScene] %v", err)
			s.errMsg = "Please drop a single image file (jpg, png, bmp, webp)."
		} else {
			s.Submit(name, data)
		}
	}

	if utils.KeyJustPressed(ebiten.KeyJ) {
		s.reportExport(s.ExportJSON())
	}
	if utils.KeyJustPressed(ebiten.KeyS) {
		s.reportExport(s.ExportImage())
	}

	s.poll()
}

// readDroppedImage 读取拖入的第一个图片文件
func readDroppedImage(files fs.FS) (string, []byte, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return "", nil, fmt.Errorf("failed to read dropped files: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(path.Ext(e.Name()))] {
			continue
		}
		data, err := fs.ReadFile(files, e.Name())
		if err != nil {
			return "", nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		if len(data) > maxUploadBytes {
			return "", nil, fmt.Errorf("%s is larger than %d bytes", e.Name(), maxUploadBytes)
		}
		return e.Name(), data, nil
	}
	return "", nil, ErrNoImageDropped
}

// Submit 开始检测，已有请求进行中时返回 false
func (s *DetectScene) Submit(fileName string, data []byte) bool {
	if s.loading {
		return false
	}
	s.loading = true
	s.fileName = fileName
	s.result = nil
	s.resultImage = nil
	s.disposePreview()
	s.errMsg = ""
	s.message = ""

	ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
	s.cancel = cancel
	go func() {
		defer cancel()
		res, err := s.detector.Detect(ctx, fileName, data)
		s.results <- detectOutcome{fileName: fileName, result: res, err: err}
	}()
	log.Printf("[DetectScene] submitted %s (%d bytes)", fileName, len(data))
	return true
}

// poll 非阻塞地取回后台结果
func (s *DetectScene) poll() bool {
	select {
	case out := <-s.results:
		s.loading = false
		s.cancel = nil
		if out.err != nil {
			log.Printf("[DetectScene] detection failed: %v", out.err)
			s.errMsg = "Failed to process image. Please try again."
			return true
		}

		s.result = out.result
		if img, err := decodeResultImage(out.result.Image); err != nil {
			log.Printf("[DetectScene] Warning: %v", err)
		} else {
			s.resultImage = img
		}

		rec := game.NewDetectionRecord(out.fileName, out.result, s.now())
		if err := s.history.Add(rec); err != nil {
			log.Printf("[DetectScene] Warning: failed to save history: %v", err)
		}
		return true
	default:
		return false
	}
}

// decodeResultImage 解码检测服务返回的 base64 PNG，空字符串返回 nil
func decodeResultImage(encoded string) (image.Image, error) {
	if encoded == "" {
		return nil, nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode result image: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode result image: %w", err)
	}
	return img, nil
}

// ExportJSON 把检测框写入 ExportDir/detections.json
func (s *DetectScene) ExportJSON() (string, error) {
	if s.result == nil {
		return "", errors.New("no detection result to export")
	}
	data, err := json.MarshalIndent(s.result.Detections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal detections: %w", err)
	}
	out := filepath.Join(s.ExportDir, exportJSONName)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}

// ExportImage 把标注后的结果图写入 ExportDir/detection_result.png
func (s *DetectScene) ExportImage() (string, error) {
	if s.resultImage == nil {
		return "", errors.New("no result image to export")
	}
	out := filepath.Join(s.ExportDir, exportImageName)
	if err := imaging.Save(s.resultImage, out); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}

func (s *DetectScene) reportExport(out string, err error) {
	if err != nil {
		log.Printf("[DetectScene] export failed: %v", err)
		s.message = err.Error()
		return
	}
	log.Printf("[DetectScene] exported %s", out)
	s.message = "Saved " + out
}

// Loading 是否有请求进行中
func (s *DetectScene) Loading() bool {
	return s.loading
}

// Result 返回最近一次成功的检测结果
func (s *DetectScene) Result() *game.DetectionResult {
	return s.result
}

// Close 取消进行中的请求并释放预览图
func (s *DetectScene) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.disposePreview()
}

func (s *DetectScene) disposePreview() {
	if s.preview != nil {
		s.preview.Deallocate()
		s.preview = nil
	}
}

// Draw 绘制检测页
func (s *DetectScene) Draw(screen *ebiten.Image) {
	drawBackground(screen)

	cx := float64(screen.Bounds().Dx()) / 2
	y := float64(NavBarHeight) + 32
	utils.DrawCenteredText(screen, "OBJECT DETECTION", uiFace, cx, y, scaleTitle*0.75, colorTitle)
	y += lineHeight*scaleTitle*0.75 + 16

	intro := "Drop an image onto the window to detect fire extinguishers, toolboxes, and oxygen tanks using our advanced YOLOv8 model."
	for _, line := range utils.WrapText(intro, uiFace, pageWidth(screen)) {
		utils.DrawCenteredText(screen, line, uiFace, cx, y, scaleBody, colorMuted)
		y += lineHeight + 4
	}
	y += 16

	switch {
	case s.loading:
		utils.DrawCenteredText(screen, "Processing "+s.fileName+"...", uiFace, cx, y, scaleHead, colorAccent)
		return
	case s.errMsg != "":
		utils.DrawCenteredText(screen, s.errMsg, uiFace, cx, y, scaleBody, colorError)
		y += lineHeight + 8
	}

	if s.result == nil {
		return
	}

	utils.DrawText(screen, "Results: "+s.fileName, uiFace, contentMargin, y, scaleHead, colorTitle)
	y += lineHeight*scaleHead + 8

	// 类别计数
	classes := make([]string, 0, len(s.result.ClassCounts))
	for c := range s.result.ClassCounts {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	x := contentMargin
	for _, c := range classes {
		label := fmt.Sprintf("%s: %d", c, s.result.ClassCounts[c])
		utils.DrawText(screen, label, uiFace, x, y, scaleBody, colorSuccess)
		x += utils.MeasureTextWidth(label, uiFace) + 24
	}
	y += lineHeight + 12

	tableY := y
	utils.DrawText(screen, "Class               Confidence   Box [x1, y1, x2, y2]", uiFace, contentMargin, y, scaleBody, colorSubtle)
	y += lineHeight + 4
	for _, d := range s.result.Detections {
		utils.DrawText(screen, formatDetectionRow(d), uiFace, contentMargin, y, scaleBody, colorTitle)
		y += lineHeight + 2
	}

	s.drawPreview(screen, tableY)

	y += 12
	utils.DrawText(screen, "J: export detections.json   S: save detection_result.png", uiFace, contentMargin, y, scaleBody, colorMuted)
	if s.message != "" {
		utils.DrawText(screen, s.message, uiFace, contentMargin, y+lineHeight+4, scaleBody, colorAccent)
	}
}

// drawPreview 在右侧绘制缩小后的结果图
func (s *DetectScene) drawPreview(screen *ebiten.Image, y float64) {
	if s.resultImage == nil {
		return
	}
	if s.preview == nil {
		s.preview = ebiten.NewImageFromImage(imaging.Fit(s.resultImage, previewMaxW, previewMaxH, imaging.Linear))
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())-contentMargin-float64(s.preview.Bounds().Dx()), y)
	screen.DrawImage(s.preview, op)
}

func formatDetectionRow(d game.DetectedObject) string {
	box := make([]string, len(d.Box))
	for i, v := range d.Box {
		box[i] = fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%-20s%-13s%s", d.Class, fmt.Sprintf("%.1f%%", d.Confidence*100), strings.Join(box, ", "))
}
