package game

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MaxHistoryEntries 保留的检测记录数量上限
const MaxHistoryEntries = 10

// DetectedObject 单个检测框
type DetectedObject struct {
	Class      string    `yaml:"class" json:"class"`
	Confidence float64   `yaml:"conf" json:"conf"`
	Box        []float64 `yaml:"box" json:"box"` // x1, y1, x2, y2
}

// DetectionRecord 一次检测的元数据（不含图片）
type DetectionRecord struct {
	ID          string           `yaml:"id"`
	FileName    string           `yaml:"filename"`
	Date        time.Time        `yaml:"date"`
	Detections  []DetectedObject `yaml:"detections"`
	ClassCounts map[string]int   `yaml:"classCounts"`
}

// TotalObjects 返回检测到的对象总数
func (r DetectionRecord) TotalObjects() int {
	total := 0
	for _, n := range r.ClassCounts {
		total += n
	}
	return total
}

// AverageConfidence 返回平均置信度，无检测对象时返回 0
func (r DetectionRecord) AverageConfidence() float64 {
	if len(r.Detections) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range r.Detections {
		sum += d.Confidence
	}
	return sum / float64(len(r.Detections))
}

// historyData 持久化格式
type historyData struct {
	Records []DetectionRecord `yaml:"records"`
}

// HistoryManager 检测历史管理器
//
// 最新记录在前，最多保留 MaxHistoryEntries 条。
// 只保存元数据；与粒子叠加层没有任何数据交互。
type HistoryManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	records      []DetectionRecord
}

const (
	historyObject   = "history"
	historyProperty = "detections"
)

// NewHistoryManager 创建历史管理器并加载已保存的记录
func NewHistoryManager(gdataManager *gdata.Manager) *HistoryManager {
	hm := &HistoryManager{gdataManager: gdataManager}
	if err := hm.Load(); err != nil {
		log.Printf("[HistoryManager] Warning: failed to load history: %v (starting empty)", err)
	}
	return hm
}

// Load 从 gdata 加载记录
func (hm *HistoryManager) Load() error {
	hm.records = nil
	if hm.gdataManager == nil || !hm.gdataManager.ObjectPropExists(historyObject, historyProperty) {
		return nil
	}

	data, err := hm.gdataManager.LoadObjectProp(historyObject, historyProperty)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	var hd historyData
	if err := yaml.Unmarshal(data, &hd); err != nil {
		return fmt.Errorf("failed to unmarshal history: %w", err)
	}

	hm.records = hd.Records
	hm.normalize()
	log.Printf("[HistoryManager] loaded %d records", len(hm.records))
	return nil
}

// Save 保存记录到 gdata，降级模式下直接返回 nil
func (hm *HistoryManager) Save() error {
	if hm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(historyData{Records: hm.records})
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := hm.gdataManager.SaveObjectProp(historyObject, historyProperty, data); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Add 在最前面插入一条记录并截断到上限
//
// 同 ID 的旧记录会被替换。
func (hm *HistoryManager) Add(rec DetectionRecord) error {
	hm.removeByID(rec.ID)
	hm.records = append([]DetectionRecord{rec}, hm.records...)
	if len(hm.records) > MaxHistoryEntries {
		hm.records = hm.records[:MaxHistoryEntries]
	}
	return hm.Save()
}

// Restore 恢复之前删除的记录（撤销操作），按时间重新排序
func (hm *HistoryManager) Restore(recs ...DetectionRecord) error {
	for _, rec := range recs {
		hm.removeByID(rec.ID)
		hm.records = append(hm.records, rec)
	}
	hm.normalize()
	return hm.Save()
}

// Remove 删除指定记录，返回被删除的记录
func (hm *HistoryManager) Remove(id string) (DetectionRecord, bool, error) {
	rec, ok := hm.removeByID(id)
	if !ok {
		return DetectionRecord{}, false, nil
	}
	return rec, true, hm.Save()
}

// Clear 删除所有记录，返回被删除的记录
func (hm *HistoryManager) Clear() ([]DetectionRecord, error) {
	removed := hm.records
	hm.records = nil
	return removed, hm.Save()
}

// Entries 返回记录副本（最新在前）
func (hm *HistoryManager) Entries() []DetectionRecord {
	out := make([]DetectionRecord, len(hm.records))
	copy(out, hm.records)
	return out
}

// Len 返回记录数量
func (hm *HistoryManager) Len() int {
	return len(hm.records)
}

func (hm *HistoryManager) removeByID(id string) (DetectionRecord, bool) {
	for i, rec := range hm.records {
		if rec.ID == id {
			hm.records = append(hm.records[:i], hm.records[i+1:]...)
			return rec, true
		}
	}
	return DetectionRecord{}, false
}

// normalize 最新在前排序并截断
func (hm *HistoryManager) normalize() {
	sort.SliceStable(hm.records, func(i, j int) bool {
		return hm.records[i].Date.After(hm.records[j].Date)
	})
	if len(hm.records) > MaxHistoryEntries {
		hm.records = hm.records[:MaxHistoryEntries]
	}
}
